package errno

import (
	"github.com/xh-polaris/recruit-core-api/pkg/errorx/code"
)

const (
	UnAuthErrCode = 1000
	OIDErrCode    = 777
)

func init() {
	code.Register(
		UnAuthErrCode,
		"身份认证失败",
		code.WithAffectStability(false),
	)
	code.Register(
		OIDErrCode,
		"非法的ID: {id}",
		code.WithAffectStability(false),
	)
}
