package application

import (
	"context"

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
	collection = "application"
)

type MongoMapper interface {
	FindByIds(ctx context.Context, ids []bson.ObjectID) ([]*Application, error)
	ListByStudent(ctx context.Context, student bson.ObjectID) ([]*Application, error) // 按创建时间倒序
	ListByJobs(ctx context.Context, jobs []bson.ObjectID) ([]*Application, error)     // 按创建时间倒序
}

type mongoMapper struct {
	conn *monc.Model
}

func NewApplicationMongoMapper(config *config.Config) MongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, collection, config.Cache)
	return &mongoMapper{conn: conn}
}

func newestFirst() *options.FindOptionsBuilder {
	return options.Find().SetSort(bson.D{{Key: cst.CreateTime, Value: -1}, {Key: cst.Id, Value: -1}})
}

func (m *mongoMapper) FindByIds(ctx context.Context, ids []bson.ObjectID) (apps []*Application, err error) {
	if len(ids) == 0 {
		return []*Application{}, nil
	}
	if err = m.conn.Find(ctx, &apps, bson.M{cst.Id: bson.M{cst.In: ids}}); err != nil {
		logs.CtxErrorf(ctx, "[mapper] [application] [FindByIds] err:%s", errorx.ErrorWithoutStack(err))
		return nil, err
	}
	return apps, nil
}

func (m *mongoMapper) ListByStudent(ctx context.Context, student bson.ObjectID) (apps []*Application, err error) {
	if err = m.conn.Find(ctx, &apps, bson.M{cst.StudentId: student}, newestFirst()); err != nil {
		logs.CtxErrorf(ctx, "[mapper] [application] [ListByStudent] err:%s", errorx.ErrorWithoutStack(err))
		return nil, err
	}
	return apps, nil
}

func (m *mongoMapper) ListByJobs(ctx context.Context, jobs []bson.ObjectID) (apps []*Application, err error) {
	if len(jobs) == 0 {
		return []*Application{}, nil
	}
	if err = m.conn.Find(ctx, &apps, bson.M{cst.JobId: bson.M{cst.In: jobs}}, newestFirst()); err != nil {
		logs.CtxErrorf(ctx, "[mapper] [application] [ListByJobs] err:%s", errorx.ErrorWithoutStack(err))
		return nil, err
	}
	return apps, nil
}
