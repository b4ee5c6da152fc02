package core_api

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/xh-polaris/recruit-core-api/biz/adaptor"
	"github.com/xh-polaris/recruit-core-api/pkg/errorx"
	"github.com/xh-polaris/recruit-core-api/pkg/logs"
	"github.com/xh-polaris/recruit-core-api/pkg/wsx"
	"github.com/xh-polaris/recruit-core-api/provider"
	"github.com/xh-polaris/recruit-core-api/types/errno"
)

// Connect 建立实时推送连接, 升级前完成鉴权
// @router /api/v1/ws [GET]
func Connect(ctx context.Context, c *app.RequestContext) {
	meta, err := adaptor.ExtractUserMeta(adaptor.InjectContext(ctx, c))
	if err != nil {
		adaptor.PostError(ctx, c, errorx.WrapByCode(err, errno.UnAuthErrCode))
		return
	}

	p := provider.Get()
	if err = wsx.UpgradeWs(adaptor.InjectUserMeta(ctx, meta), c, p.RealtimeService.Serve); err != nil {
		logs.Errorf("[controller] [Connect] websocket upgrade error: %s", errorx.ErrorWithoutStack(err))
	}
}
