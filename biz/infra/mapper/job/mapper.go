package job

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
	collection = "job"
)

type MongoMapper interface {
	FindByIds(ctx context.Context, ids []bson.ObjectID) ([]*Job, error)
	ListByRecruiter(ctx context.Context, recruiter bson.ObjectID) ([]*Job, error) // 按创建时间倒序
}

type mongoMapper struct {
	conn *monc.Model
}

func NewJobMongoMapper(config *config.Config) MongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, collection, config.Cache)
	return &mongoMapper{conn: conn}
}

func (m *mongoMapper) FindByIds(ctx context.Context, ids []bson.ObjectID) (jobs []*Job, err error) {
	if len(ids) == 0 {
		return []*Job{}, nil
	}
	if err = m.conn.Find(ctx, &jobs, bson.M{cst.Id: bson.M{cst.In: ids}}); err != nil {
		logs.CtxErrorf(ctx, "[mapper] [job] [FindByIds] err:%s", errorx.ErrorWithoutStack(err))
		return nil, err
	}
	return jobs, nil
}

func (m *mongoMapper) ListByRecruiter(ctx context.Context, recruiter bson.ObjectID) (jobs []*Job, err error) {
	opts := options.Find().SetSort(bson.D{{Key: cst.CreateTime, Value: -1}})
	if err = m.conn.Find(ctx, &jobs, bson.M{cst.RecruiterId: recruiter}, opts); err != nil {
		logs.CtxErrorf(ctx, "[mapper] [job] [ListByRecruiter] err:%s", errorx.ErrorWithoutStack(err))
		return nil, err
	}
	return jobs, nil
}
