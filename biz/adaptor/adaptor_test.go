package adaptor

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"net/http"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xh-polaris/recruit-core-api/biz/application/dto/basic"
	"github.com/xh-polaris/recruit-core-api/pkg/errorx"
	"github.com/xh-polaris/recruit-core-api/pkg/errorx/code"
)

func newKey(t *testing.T) (*ecdsa.PrivateKey, string) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	return key, string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

func sign(t *testing.T, key *ecdsa.PrivateKey, claims jwt.MapClaims) string {
	s, err := jwt.NewWithClaims(jwt.SigningMethodES256, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestParseToken(t *testing.T) {
	key, pub := newKey(t)

	meta, err := ParseToken(sign(t, key, jwt.MapClaims{"userId": "u1", "role": "student"}), pub)
	require.NoError(t, err)
	assert.Equal(t, &UserMeta{UserId: "u1", Role: "student"}, meta)

	_, err = ParseToken(sign(t, key, jwt.MapClaims{"role": "student"}), pub)
	assert.Error(t, err)

	other, _ := newKey(t)
	_, err = ParseToken(sign(t, other, jwt.MapClaims{"userId": "u1"}), pub)
	assert.Error(t, err)

	hs, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"userId": "u1"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = ParseToken(hs, pub)
	assert.Error(t, err)
}

func TestExtractUserMeta(t *testing.T) {
	injected := &UserMeta{UserId: "u1", Role: "recruiter"}
	meta, err := ExtractUserMeta(InjectUserMeta(context.Background(), injected))
	require.NoError(t, err)
	assert.Same(t, injected, meta)

	_, err = ExtractUserMeta(context.Background())
	assert.Error(t, err)

	c := app.NewContext(0)
	_, err = ExtractUserMeta(InjectContext(context.Background(), c))
	assert.Error(t, err)
}

type sampleResp struct {
	Resp    *basic.Response `json:"resp"`
	Count   int64           `json:"count"`
	Items   []string        `json:"items"`
	Extra   string          `json:"extra,omitempty"`
	Skipped string          `json:"-"`
}

func TestMakeResponse(t *testing.T) {
	r := makeResponse(&sampleResp{Resp: &basic.Response{Code: 200, Msg: "success"}, Items: []string{}})
	assert.Equal(t, int64(200), r["code"])
	assert.Equal(t, "success", r["msg"])
	d, ok := r["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, int64(0), d["count"])
	assert.Equal(t, []string{}, d["items"])
	assert.NotContains(t, d, "extra")
	assert.NotContains(t, d, "-")

	r = makeResponse(&sampleResp{Extra: "x"})
	assert.Equal(t, int64(200), r["code"])
	assert.Equal(t, "x", r["data"].(map[string]any)["extra"])

	assert.Nil(t, makeResponse(nil))
	assert.Nil(t, makeResponse(sampleResp{}))
}

func TestPostError(t *testing.T) {
	code.Register(990101, "测试错误")

	c := app.NewContext(0)
	PostError(context.Background(), c, errorx.WrapByCode(errors.New("boom"), 990101))
	assert.Equal(t, http.StatusOK, c.Response.StatusCode())
	var body data
	require.NoError(t, sonic.Unmarshal(c.Response.Body(), &body))
	assert.Equal(t, int32(990101), body.Code)
	assert.Equal(t, "测试错误", body.Msg)

	c = app.NewContext(0)
	PostError(context.Background(), c, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, c.Response.StatusCode())
}

func TestPostProcess(t *testing.T) {
	c := app.NewContext(0)
	PostProcess(context.Background(), c, nil, &sampleResp{Resp: &basic.Response{Code: 200, Msg: "success"}, Count: 3}, nil)
	assert.Equal(t, http.StatusOK, c.Response.StatusCode())
	var body map[string]any
	require.NoError(t, sonic.Unmarshal(c.Response.Body(), &body))
	assert.Equal(t, float64(200), body["code"])
	assert.Equal(t, float64(3), body["data"].(map[string]any)["count"])
}
