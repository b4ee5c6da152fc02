package message

import (
	"context"
	"time"

	"github.com/xh-polaris/recruit-core-api/biz/infra/config"
	"github.com/xh-polaris/recruit-core-api/biz/infra/cst"
	"github.com/xh-polaris/recruit-core-api/pkg/errorx"
	"github.com/xh-polaris/recruit-core-api/pkg/logs"
	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var _ MongoMapper = (*mongoMapper)(nil)

const (
	collection = "message"
)

type MongoMapper interface {
	InsertOne(ctx context.Context, msg *Message) error
	ListByIds(ctx context.Context, ids []bson.ObjectID, after time.Time) ([]*Message, error) // 查询create_time晚于after的消息, after为零值时不过滤
	ListDigests(ctx context.Context, ids []bson.ObjectID) ([]*Digest, error)
	MarkRead(ctx context.Context, ids []bson.ObjectID, receiver bson.ObjectID) (int64, error) // 将发给receiver的未读消息置为已读, 返回修改数量
}

type mongoMapper struct {
	conn *monc.Model
}

func NewMessageMongoMapper(config *config.Config) MongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, collection, config.Cache)
	return &mongoMapper{conn: conn}
}

func (m *mongoMapper) InsertOne(ctx context.Context, msg *Message) error {
	if msg.ID.IsZero() {
		msg.ID = bson.NewObjectID()
	}
	if _, err := m.conn.InsertOneNoCache(ctx, msg); err != nil {
		logs.CtxErrorf(ctx, "[mapper] [message] [InsertOne] err:%s", errorx.ErrorWithoutStack(err))
		return err
	}
	return nil
}

// ListByIds 返回结果不保证顺序, 由调用方按对话中的引用顺序排列
func (m *mongoMapper) ListByIds(ctx context.Context, ids []bson.ObjectID, after time.Time) (msgs []*Message, err error) {
	if len(ids) == 0 {
		return []*Message{}, nil
	}
	filter := bson.M{cst.Id: bson.M{cst.In: ids}}
	if !after.IsZero() {
		filter[cst.CreateTime] = bson.M{cst.GT: after}
	}
	if err = m.conn.Find(ctx, &msgs, filter, options.Find().SetSort(bson.D{{Key: cst.CreateTime, Value: 1}})); err != nil {
		logs.CtxErrorf(ctx, "[mapper] [message] [ListByIds] err:%s", errorx.ErrorWithoutStack(err))
		return nil, err
	}
	return msgs, nil
}

func (m *mongoMapper) ListDigests(ctx context.Context, ids []bson.ObjectID) (ds []*Digest, err error) {
	if len(ids) == 0 {
		return []*Digest{}, nil
	}
	opts := options.Find().SetProjection(bson.M{cst.SenderId: 1, cst.ReceiverId: 1, cst.IsRead: 1, cst.CreateTime: 1})
	if err = m.conn.Find(ctx, &ds, bson.M{cst.Id: bson.M{cst.In: ids}}, opts); err != nil {
		logs.CtxErrorf(ctx, "[mapper] [message] [ListDigests] err:%s", errorx.ErrorWithoutStack(err))
		return nil, err
	}
	return ds, nil
}

func (m *mongoMapper) MarkRead(ctx context.Context, ids []bson.ObjectID, receiver bson.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	filter := bson.M{cst.Id: bson.M{cst.In: ids}, cst.ReceiverId: receiver, cst.IsRead: false}
	res, err := m.conn.UpdateManyNoCache(ctx, filter, bson.M{cst.Set: bson.M{cst.IsRead: true}})
	if err != nil {
		logs.CtxErrorf(ctx, "[mapper] [message] [MarkRead] err:%s", errorx.ErrorWithoutStack(err))
		return 0, err
	}
	return res.ModifiedCount, nil
}
