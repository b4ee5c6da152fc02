package user

import (
	"context"

	"github.com/xh-polaris/recruit-core-api/biz/infra/config"
	"github.com/xh-polaris/recruit-core-api/biz/infra/cst"
	"github.com/xh-polaris/recruit-core-api/pkg/errorx"
	"github.com/xh-polaris/recruit-core-api/pkg/logs"
	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var _ MongoMapper = (*mongoMapper)(nil)

const (
	collection     = "user"
	cacheKeyPrefix = "cache:user:"
)

var ErrNotFound = monc.ErrNotFound

type MongoMapper interface {
	FindById(ctx context.Context, uid bson.ObjectID) (*User, error)
	FindByIds(ctx context.Context, uids []bson.ObjectID) ([]*User, error) // 不存在的id会被忽略
}

type mongoMapper struct {
	conn *monc.Model
}

func NewUserMongoMapper(config *config.Config) MongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, collection, config.Cache)
	return &mongoMapper{conn: conn}
}

func (m *mongoMapper) FindById(ctx context.Context, uid bson.ObjectID) (*User, error) {
	var u User
	if err := m.conn.FindOne(ctx, cacheKeyPrefix+uid.Hex(), &u, bson.M{cst.Id: uid}); err != nil {
		return nil, err
	}
	return &u, nil
}

func (m *mongoMapper) FindByIds(ctx context.Context, uids []bson.ObjectID) (users []*User, err error) {
	if len(uids) == 0 {
		return []*User{}, nil
	}
	if err = m.conn.Find(ctx, &users, bson.M{cst.Id: bson.M{cst.In: uids}}); err != nil {
		logs.CtxErrorf(ctx, "[mapper] [user] [FindByIds] err:%s", errorx.ErrorWithoutStack(err))
		return nil, err
	}
	return users, nil
}
