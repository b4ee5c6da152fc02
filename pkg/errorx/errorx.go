package errorx

import (
	"errors"
	"fmt"
	"strings"

	pkgerrs "github.com/pkg/errors"
	"github.com/xh-polaris/recruit-core-api/pkg/errorx/code"
)

const (
	unknownCode = 999
	stackSep    = "\nstack="
)

// StatusError 是带有业务状态码的错误, 可通过 errors.As 从错误链中取出
type StatusError interface {
	error
	Code() int32
	Msg() string
	IsAffectStability() bool
	Extra() map[string]string
}

// Option 构造StatusError时的可选参数
type Option func(*statusError)

// KV 替换消息模板中的 {k} 占位符, 同时记录到Extra中
func KV(k, v string) Option {
	return func(e *statusError) {
		e.params[k] = v
	}
}

// Extra 仅附加额外信息, 不参与消息模板替换
func Extra(k, v string) Option {
	return func(e *statusError) {
		e.extra[k] = v
	}
}

type statusError struct {
	code      int32
	message   string
	stability bool
	params    map[string]string
	extra     map[string]string
	cause     error
}

func (e *statusError) Code() int32 { return e.code }

func (e *statusError) Msg() string { return e.message }

func (e *statusError) IsAffectStability() bool { return e.stability }

func (e *statusError) Extra() map[string]string { return e.extra }

func (e *statusError) Unwrap() error { return e.cause }

func (e *statusError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("code=%d message=%s", e.code, e.message)
	}
	return fmt.Sprintf("code=%d message=%s cause=%s", e.code, e.message, ErrorWithoutStack(e.cause))
}

// withStack 在错误信息后附带调用栈, 便于日志定位
type withStack struct {
	cause error
	stack string
}

func (w *withStack) Error() string { return w.cause.Error() + stackSep + w.stack }

func (w *withStack) Unwrap() error { return w.cause }

func build(c int32, cause error, opts ...Option) *statusError {
	e := &statusError{code: c, params: map[string]string{}, extra: map[string]string{}, cause: cause}
	for _, opt := range opts {
		opt(e)
	}
	d, ok := code.Get(c)
	if !ok {
		e.message = fmt.Sprintf("unknown error code %d", c)
		return e
	}
	e.stability = d.IsAffectStability
	e.message = d.Message
	for k, v := range e.params {
		e.message = strings.ReplaceAll(e.message, "{"+k+"}", v)
		e.extra[k] = v
	}
	return e
}

func attachStack(e error) error {
	type stackTracer interface{ StackTrace() pkgerrs.StackTrace }
	st, _ := pkgerrs.WithStack(e).(stackTracer)
	if st == nil {
		return e
	}
	// 去掉WithStack和attachStack自身的两帧
	frames := st.StackTrace()
	if len(frames) > 2 {
		frames = frames[2:]
	}
	return &withStack{cause: e, stack: strings.TrimPrefix(fmt.Sprintf("%+v", frames), "\n")}
}

// New 根据错误码创建错误
func New(c int32, opts ...Option) error {
	return attachStack(build(c, nil, opts...))
}

// WrapByCode 用错误码包装错误, err为nil时返回nil
func WrapByCode(err error, c int32, opts ...Option) error {
	if err == nil {
		return nil
	}
	// 已经是业务错误的不再重复包装, 保留最内层的错误码
	var se StatusError
	if errors.As(err, &se) {
		return err
	}
	return attachStack(build(c, err, opts...))
}

// FromError 取出错误链中的StatusError, 不存在时返回未知错误码
func FromError(err error) (StatusError, bool) {
	if err == nil {
		return nil, false
	}
	var se StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return build(unknownCode, err), false
}

// ErrorWithoutStack 返回去除调用栈的错误信息, 用于日志打印
func ErrorWithoutStack(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.Index(msg, stackSep); i != -1 {
		msg = msg[:i]
	}
	return msg
}
