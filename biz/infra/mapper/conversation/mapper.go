package conversation

import (
	"context"
	"errors"
	"time"

	"github.com/xh-polaris/recruit-core-api/biz/infra/config"
	"github.com/xh-polaris/recruit-core-api/biz/infra/cst"
	"github.com/xh-polaris/recruit-core-api/pkg/errorx"
	"github.com/xh-polaris/recruit-core-api/pkg/logs"
	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var _ MongoMapper = (*mongoMapper)(nil)

const (
	collection     = "conversation"
	cacheKeyPrefix = "cache:conversation:"
)

// ErrNotFound 对话不存在, 或查询者不是对话参与者
var ErrNotFound = monc.ErrNotFound

type MongoMapper interface {
	FindOrCreate(ctx context.Context, sender, receiver bson.ObjectID, scope Scope, now time.Time) (*Conversation, error) // 查找或创建对话, 并对接收者取消隐藏
	FindByParticipants(ctx context.Context, a, b bson.ObjectID, scope Scope) (*Conversation, error)
	FindById(ctx context.Context, cid, uid bson.ObjectID) (*Conversation, error)
	ListByParticipant(ctx context.Context, uid bson.ObjectID) ([]*Conversation, error)
	AppendMessage(ctx context.Context, cid, mid bson.ObjectID, at time.Time) error
	Hide(ctx context.Context, cid, uid bson.ObjectID) error
	Delete(ctx context.Context, cid, uid bson.ObjectID, at time.Time) error
	EnsureIndexes(ctx context.Context) error
}

type mongoMapper struct {
	conn *monc.Model
}

func NewConversationMongoMapper(config *config.Config) MongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, collection, config.Cache)
	m := &mongoMapper{conn: conn}
	if err := m.EnsureIndexes(context.Background()); err != nil {
		logs.Errorf("[mapper] [conversation] ensure indexes err:%s", errorx.ErrorWithoutStack(err))
	}
	return m
}

// EnsureIndexes (participant_key, scope_key) 唯一, 保证并发创建时只会有一个对话
func (m *mongoMapper) EnsureIndexes(ctx context.Context) error {
	_, err := m.conn.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: cst.ParticipantKey, Value: 1}, {Key: cst.ScopeKey, Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: cst.Participants, Value: 1}, {Key: cst.UpdateTime, Value: -1}},
		},
	})
	return err
}

func scopeFilter(a, b bson.ObjectID, scope Scope) bson.M {
	return bson.M{cst.ParticipantKey: ParticipantKey(a, b), cst.ScopeKey: scope.Key()}
}

// FindOrCreate 通过upsert原子地查找或创建对话
// 创建时参与者顺序为[sender, receiver]; 无论是否新建, 都会把receiver移出hidden_by并刷新update_time
func (m *mongoMapper) FindOrCreate(ctx context.Context, sender, receiver bson.ObjectID, scope Scope, now time.Time) (*Conversation, error) {
	filter := scopeFilter(sender, receiver, scope)
	onInsert := bson.M{
		cst.Id:             bson.NewObjectID(),
		cst.Participants:   []bson.ObjectID{sender, receiver},
		cst.ParticipantKey: filter[cst.ParticipantKey],
		cst.ScopeKey:       filter[cst.ScopeKey],
		cst.Messages:       []bson.ObjectID{},
		cst.DeletedBy:      bson.M{},
		cst.CreateTime:     now,
	}
	if !scope.JobId.IsZero() {
		onInsert[cst.JobId] = scope.JobId
	}
	if !scope.ApplicationId.IsZero() {
		onInsert[cst.ApplicationId] = scope.ApplicationId
	}
	update := bson.M{
		cst.SetOnInsert: onInsert,
		cst.Pull:        bson.M{cst.HiddenBy: receiver},
		cst.Set:         bson.M{cst.UpdateTime: now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var c Conversation
	err := m.conn.FindOneAndUpdateNoCache(ctx, &c, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		// 并发upsert时只有一个能插入成功, 另一个重试时会命中已存在的对话
		c = Conversation{}
		err = m.conn.FindOneAndUpdateNoCache(ctx, &c, filter, update, opts)
	}
	if err != nil {
		logs.CtxErrorf(ctx, "[mapper] [conversation] [FindOrCreate] err:%s", errorx.ErrorWithoutStack(err))
		return nil, err
	}
	if err = m.conn.DelCache(ctx, cacheKeyPrefix+c.ID.Hex()); err != nil {
		logs.CtxWarnf(ctx, "[mapper] [conversation] [FindOrCreate] del cache err:%s", errorx.ErrorWithoutStack(err))
	}
	return &c, nil
}

// FindByParticipants 按参与者和范围精确查找, 不存在时返回ErrNotFound
func (m *mongoMapper) FindByParticipants(ctx context.Context, a, b bson.ObjectID, scope Scope) (*Conversation, error) {
	var c Conversation
	if err := m.conn.FindOneNoCache(ctx, &c, scopeFilter(a, b, scope)); err != nil {
		return nil, err
	}
	return &c, nil
}

// FindById 查找对话, uid不是参与者时同样视为不存在
func (m *mongoMapper) FindById(ctx context.Context, cid, uid bson.ObjectID) (*Conversation, error) {
	var c Conversation
	if err := m.conn.FindOne(ctx, cacheKeyPrefix+cid.Hex(), &c, bson.M{cst.Id: cid}); err != nil {
		return nil, err
	}
	// 缓存命中时不会经过过滤条件, 需要在这里校验参与者
	if !c.HasParticipant(uid) {
		return nil, ErrNotFound
	}
	return &c, nil
}

// ListByParticipant 查询用户参与的全部对话, 按更新时间倒序
func (m *mongoMapper) ListByParticipant(ctx context.Context, uid bson.ObjectID) (cs []*Conversation, err error) {
	opts := options.Find().SetSort(bson.D{{Key: cst.UpdateTime, Value: -1}})
	if err = m.conn.Find(ctx, &cs, bson.M{cst.Participants: uid}, opts); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		logs.CtxErrorf(ctx, "[mapper] [conversation] [ListByParticipant] err:%s", errorx.ErrorWithoutStack(err))
		return nil, err
	}
	return cs, nil
}

// AppendMessage 追加消息引用, 同时刷新更新时间
func (m *mongoMapper) AppendMessage(ctx context.Context, cid, mid bson.ObjectID, at time.Time) error {
	res, err := m.conn.UpdateOne(ctx, cacheKeyPrefix+cid.Hex(), bson.M{cst.Id: cid},
		bson.M{cst.Push: bson.M{cst.Messages: mid}, cst.Set: bson.M{cst.UpdateTime: at}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Hide 对uid隐藏对话, 重复调用没有额外效果
func (m *mongoMapper) Hide(ctx context.Context, cid, uid bson.ObjectID) error {
	return m.updateForParticipant(ctx, cid, uid, bson.M{cst.AddToSet: bson.M{cst.HiddenBy: uid}})
}

// Delete 记录uid的删除时间并取消隐藏, 删除时间之前的消息对uid不可见
func (m *mongoMapper) Delete(ctx context.Context, cid, uid bson.ObjectID, at time.Time) error {
	return m.updateForParticipant(ctx, cid, uid, bson.M{
		cst.Set:  bson.M{cst.DeletedBy + "." + uid.Hex(): at},
		cst.Pull: bson.M{cst.HiddenBy: uid},
	})
}

func (m *mongoMapper) updateForParticipant(ctx context.Context, cid, uid bson.ObjectID, update bson.M) error {
	res, err := m.conn.UpdateOne(ctx, cacheKeyPrefix+cid.Hex(), bson.M{cst.Id: cid, cst.Participants: uid}, update)
	if err != nil {
		logs.CtxErrorf(ctx, "[mapper] [conversation] [update] cid:%s err:%s", cid.Hex(), errorx.ErrorWithoutStack(err))
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
