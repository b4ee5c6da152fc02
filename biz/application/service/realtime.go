package service

import (
	"context"

	"github.com/google/wire"
	"github.com/hertz-contrib/websocket"
	"github.com/xh-polaris/recruit-core-api/biz/adaptor"
	"github.com/xh-polaris/recruit-core-api/biz/infra/realtime"
	"github.com/xh-polaris/recruit-core-api/pkg/errorx"
	"github.com/xh-polaris/recruit-core-api/pkg/logs"
	"github.com/xh-polaris/recruit-core-api/pkg/wsx"
)

const (
	pingFrame = "ping"
	pongFrame = "pong"
)

type IRealtimeService interface {
	Serve(ctx context.Context, ws *wsx.HZWSClient)
}

// RealtimeService 维护websocket连接, 推送由ConversationService通过PresenceRegistry发起
type RealtimeService struct {
	Presence realtime.Presence
}

var RealtimeServiceSet = wire.NewSet(
	wire.Struct(new(RealtimeService), "*"),
	wire.Bind(new(IRealtimeService), new(*RealtimeService)),
)

// Serve 注册连接并阻塞读取, 客户端的文本ping会收到pong
// 调用前需要通过adaptor.InjectUserMeta注入已鉴权的用户
func (s *RealtimeService) Serve(ctx context.Context, ws *wsx.HZWSClient) {
	meta, err := adaptor.ExtractUserMeta(ctx)
	if err != nil {
		logs.CtxWarnf(ctx, "[service] [realtime] unauthenticated connection: %s", errorx.ErrorWithoutStack(err))
		return
	}
	h := s.Presence.Attach(ctx, meta.UserId, ws)
	defer s.Presence.Detach(ctx, h)
	logs.CtxInfof(ctx, "[service] [realtime] %s connected", meta.UserId)

	for {
		mt, data, err := ws.Read()
		if err != nil {
			if !wsx.IsNormal(err) {
				logs.CtxWarnf(ctx, "[service] [realtime] %s read err:%s", meta.UserId, errorx.ErrorWithoutStack(err))
			}
			logs.CtxInfof(ctx, "[service] [realtime] %s disconnected", meta.UserId)
			return
		}
		s.Presence.Touch(ctx, h)
		if mt == websocket.TextMessage && string(data) == pingFrame {
			if err = ws.WriteString(pongFrame); err != nil {
				return
			}
		}
	}
}
