package logs

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// logs 是对hlog的轻量封装, 业务代码统一从这里打日志, 方便后续替换底层实现

// SetLevel 设置日志等级, 支持 debug/info/warn/error
func SetLevel(level string) {
	switch level {
	case "debug":
		hlog.SetLevel(hlog.LevelDebug)
	case "warn":
		hlog.SetLevel(hlog.LevelWarn)
	case "error":
		hlog.SetLevel(hlog.LevelError)
	default:
		hlog.SetLevel(hlog.LevelInfo)
	}
}

func Debugf(format string, v ...any) {
	hlog.Debugf(format, v...)
}

func Infof(format string, v ...any) {
	hlog.Infof(format, v...)
}

func Warnf(format string, v ...any) {
	hlog.Warnf(format, v...)
}

func Errorf(format string, v ...any) {
	hlog.Errorf(format, v...)
}

func CtxDebugf(ctx context.Context, format string, v ...any) {
	hlog.CtxDebugf(ctx, format, v...)
}

func CtxInfof(ctx context.Context, format string, v ...any) {
	hlog.CtxInfof(ctx, format, v...)
}

func CtxWarnf(ctx context.Context, format string, v ...any) {
	hlog.CtxWarnf(ctx, format, v...)
}

func CtxErrorf(ctx context.Context, format string, v ...any) {
	hlog.CtxErrorf(ctx, format, v...)
}
