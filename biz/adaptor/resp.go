package adaptor

// HTTP 响应相关

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	hertz "github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/xh-polaris/gopkg/util"
	"github.com/xh-polaris/recruit-core-api/pkg/errorx"
	"github.com/xh-polaris/recruit-core-api/pkg/logs"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel/trace"
)

type data struct {
	Code int32  `json:"code"`
	Msg  string `json:"msg"`
}

// PostProcess 处理http响应, resp要求指针或接口类型
// 在日志中记录本次调用详情, 同时向响应头中注入符合b3规范的链路信息, 主要是trace_id
func PostProcess(ctx context.Context, c *app.RequestContext, req, resp any, err error) {
	b3.New().Inject(ctx, &headerProvider{headers: &c.Response.Header})
	logs.CtxInfof(ctx, "[%s] req=%s, resp=%s, err=%s, trace=%s", c.Path(), util.JSONF(req), util.JSONF(resp), errorx.ErrorWithoutStack(err), trace.SpanContextFromContext(ctx).TraceID().String())

	// 无错, 正常响应
	if err == nil {
		c.JSON(hertz.StatusOK, makeResponse(resp))
		return
	}
	PostError(ctx, c, err)
}

// PostError 处理错误, 业务错误码以200返回, 其余为500
func PostError(ctx context.Context, c *app.RequestContext, err error) {
	var customErr errorx.StatusError
	if errors.As(err, &customErr) && customErr.Code() != 0 {
		logs.CtxWarnf(ctx, "[ErrorX] error: %d %s", customErr.Code(), errorx.ErrorWithoutStack(err))
		c.AbortWithStatusJSON(http.StatusOK, data{Code: customErr.Code(), Msg: customErr.Msg()})
		return
	}
	logs.CtxErrorf(ctx, "internal error, err=%s", errorx.ErrorWithoutStack(err))
	c.String(hertz.StatusInternalServerError, err.Error())
}

// makeResponse 通过反射构造{code, msg, data}格式的响应体
func makeResponse(resp any) map[string]any {
	if resp == nil {
		return nil
	}
	v := reflect.ValueOf(resp)
	if v.IsZero() || v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return nil
	}
	v = v.Elem()
	response := map[string]any{"code": int64(http.StatusOK), "msg": "success"}
	if r := v.FieldByName("Resp"); r.IsValid() && !r.IsNil() {
		response["code"] = r.Elem().FieldByName("Code").Int()
		response["msg"] = r.Elem().FieldByName("Msg").String()
	}

	data := make(map[string]any)
	for i := 0; i < v.NumField(); i++ {
		field := v.Type().Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == "" || jsonTag == "-" || field.Name == "Resp" {
			continue
		}
		name, opts, _ := strings.Cut(jsonTag, ",")
		if fieldValue := v.Field(i); !fieldValue.IsZero() || !strings.Contains(opts, "omitempty") {
			data[name] = fieldValue.Interface()
		}
	}
	if len(data) > 0 {
		response["data"] = data
	}
	return response
}
