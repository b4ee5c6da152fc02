package adaptor

import (
	"context"
	"errors"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/golang-jwt/jwt/v4"
	"github.com/xh-polaris/recruit-core-api/biz/infra/config"
	"github.com/xh-polaris/recruit-core-api/pkg/errorx"
	"github.com/xh-polaris/recruit-core-api/pkg/logs"
	"go.opentelemetry.io/otel/propagation"
)

type ctxKey string

const (
	hertzContext ctxKey = "hertz_context"
	userMetaKey  ctxKey = "user_meta"
)

// UserMeta 身份服务签发的token中的用户信息
type UserMeta struct {
	UserId string `json:"userId"`
	Role   string `json:"role"`
}

func InjectContext(ctx context.Context, c *app.RequestContext) context.Context {
	return context.WithValue(ctx, hertzContext, c)
}

func ExtractContext(ctx context.Context) (*app.RequestContext, error) {
	c, ok := ctx.Value(hertzContext).(*app.RequestContext)
	if !ok {
		return nil, errors.New("hertz context not found")
	}
	return c, nil
}

// InjectUserMeta 直接注入已经校验过的用户信息
func InjectUserMeta(ctx context.Context, meta *UserMeta) context.Context {
	return context.WithValue(ctx, userMetaKey, meta)
}

// ExtractUserMeta 优先使用已注入的用户信息, 否则从Authorization头或token参数中解析
func ExtractUserMeta(ctx context.Context) (meta *UserMeta, err error) {
	if m, ok := ctx.Value(userMetaKey).(*UserMeta); ok && m != nil {
		return m, nil
	}
	defer func() {
		if err != nil {
			logs.CtxInfof(ctx, "extract user meta fail, err=%s", errorx.ErrorWithoutStack(err))
		}
	}()
	c, err := ExtractContext(ctx)
	if err != nil {
		return nil, err
	}
	tokenString := strings.TrimPrefix(string(c.GetHeader("Authorization")), "Bearer ")
	if tokenString == "" {
		tokenString = c.Query("token") // 浏览器建立websocket时无法设置请求头
	}
	if tokenString == "" {
		return nil, errors.New("token is empty")
	}
	cfg := config.GetConfig()
	if cfg == nil {
		return nil, errors.New("auth not configured")
	}
	return ParseToken(tokenString, cfg.Auth.PublicKey)
}

// ParseToken 校验ES256签名并读取userId与role
func ParseToken(tokenString, publicKey string) (*UserMeta, error) {
	token, err := jwt.Parse(tokenString, func(_ *jwt.Token) (interface{}, error) {
		return jwt.ParseECPublicKeyFromPEM([]byte(publicKey))
	}, jwt.WithValidMethods([]string{jwt.SigningMethodES256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims")
	}
	uid, _ := claims["userId"].(string)
	if uid == "" {
		return nil, errors.New("userId not found in token")
	}
	role, _ := claims["role"].(string)
	return &UserMeta{UserId: uid, Role: role}, nil
}

var _ propagation.TextMapCarrier = &headerProvider{}

type headerProvider struct {
	headers *protocol.ResponseHeader
}

// Get a value from metadata by key
func (m *headerProvider) Get(key string) string {
	return m.headers.Get(key)
}

// Set a value to metadata by k/v
func (m *headerProvider) Set(key, value string) {
	m.headers.Set(key, value)
}

// Keys Iteratively get all keys of metadata
func (m *headerProvider) Keys() []string {
	out := make([]string, 0)

	m.headers.VisitAll(func(key, value []byte) {
		out = append(out, string(key))
	})

	return out
}
