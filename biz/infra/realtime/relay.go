package realtime

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/xh-polaris/recruit-core-api/pkg/errorx"
	"github.com/xh-polaris/recruit-core-api/pkg/logs"
)

const (
	presenceKeyPrefix = "recruit:presence:" // 用户id -> 所在实例
	pushChannelPrefix = "recruit:push:"     // 每个实例订阅自己的频道
)

// 只有仍然指向本实例时才续期或删除, 避免覆盖用户在其他实例上的新连接
var (
	releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)
	refreshScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`)
)

// envelope 跨实例转发的推送
type envelope struct {
	UserId string `json:"userId"`
	Event  *Event `json:"event"`
}

// remote 连接在其他实例上的用户
type remote struct {
	uid      string
	instance string
}

func (r *remote) UserId() string { return r.uid }

var _ Presence = (*RedisRelay)(nil)

// RedisRelay 多实例部署时, 通过redis记录用户所在实例, 并用pub/sub转发推送
type RedisRelay struct {
	hub      *Hub
	rdb      *redis.Client
	instance string
	ttl      time.Duration
}

func NewRedisRelay(hub *Hub, rdb *redis.Client, instance string, ttl time.Duration) *RedisRelay {
	return &RedisRelay{hub: hub, rdb: rdb, instance: instance, ttl: ttl}
}

func presenceKey(uid string) string { return presenceKeyPrefix + uid }

func pushChannel(instance string) string { return pushChannelPrefix + instance }

func (r *RedisRelay) Attach(ctx context.Context, uid string, conn Conn) Handle {
	h := r.hub.Attach(ctx, uid, conn)
	if err := r.rdb.Set(ctx, presenceKey(uid), r.instance, r.ttl).Err(); err != nil {
		logs.CtxErrorf(ctx, "[realtime] [relay] register presence of %s err:%s", uid, errorx.ErrorWithoutStack(err))
	}
	return h
}

func (r *RedisRelay) Detach(ctx context.Context, h Handle) bool {
	if !r.hub.Detach(ctx, h) {
		return false
	}
	if err := releaseScript.Run(ctx, r.rdb, []string{presenceKey(h.UserId())}, r.instance).Err(); err != nil {
		logs.CtxErrorf(ctx, "[realtime] [relay] release presence of %s err:%s", h.UserId(), errorx.ErrorWithoutStack(err))
	}
	return true
}

func (r *RedisRelay) Touch(ctx context.Context, h Handle) {
	if cur, ok := r.hub.Lookup(ctx, h.UserId()); !ok || cur != h {
		return
	}
	err := refreshScript.Run(ctx, r.rdb, []string{presenceKey(h.UserId())}, r.instance, r.ttl.Milliseconds()).Err()
	if err != nil {
		logs.CtxWarnf(ctx, "[realtime] [relay] refresh presence of %s err:%s", h.UserId(), errorx.ErrorWithoutStack(err))
	}
}

// Lookup 先查本实例, 再查redis中记录的实例
func (r *RedisRelay) Lookup(ctx context.Context, uid string) (Handle, bool) {
	if h, ok := r.hub.Lookup(ctx, uid); ok {
		return h, true
	}
	instance, err := r.rdb.Get(ctx, presenceKey(uid)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logs.CtxErrorf(ctx, "[realtime] [relay] lookup presence of %s err:%s", uid, errorx.ErrorWithoutStack(err))
		}
		return nil, false
	}
	// 记录指向本实例但本地没有连接, 说明是过期的记录
	if instance == "" || instance == r.instance {
		return nil, false
	}
	return &remote{uid: uid, instance: instance}, true
}

func (r *RedisRelay) Publish(ctx context.Context, h Handle, e *Event) error {
	rh, ok := h.(*remote)
	if !ok {
		return r.hub.Publish(ctx, h, e)
	}
	data, err := sonic.Marshal(&envelope{UserId: rh.uid, Event: e})
	if err != nil {
		return err
	}
	return r.rdb.Publish(ctx, pushChannel(rh.instance), data).Err()
}

// Run 订阅本实例的频道, 把其他实例转发来的推送投递给本地连接
func (r *RedisRelay) Run(ctx context.Context) error {
	sub := r.rdb.Subscribe(ctx, pushChannel(r.instance))
	defer func() { _ = sub.Close() }()
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	logs.Infof("[realtime] [relay] instance %s subscribed", r.instance)
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.deliver(ctx, msg.Payload)
		}
	}
}

func (r *RedisRelay) deliver(ctx context.Context, payload string) {
	var env envelope
	if err := sonic.UnmarshalString(payload, &env); err != nil || env.Event == nil {
		logs.CtxWarnf(ctx, "[realtime] [relay] drop malformed envelope: %s", payload)
		return
	}
	h, ok := r.hub.Lookup(ctx, env.UserId)
	if !ok {
		return
	}
	if err := r.hub.Publish(ctx, h, env.Event); err != nil {
		logs.CtxWarnf(ctx, "[realtime] [relay] deliver to %s err:%s", env.UserId, errorx.ErrorWithoutStack(err))
	}
}
