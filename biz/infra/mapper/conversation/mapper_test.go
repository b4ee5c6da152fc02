package conversation

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xh-polaris/recruit-core-api/biz/infra/config"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// 需要真实的mongo与redis, 未配置时跳过
func newTestMapper(t *testing.T) MongoMapper {
	url, addr := os.Getenv("MONGO_TEST_URL"), os.Getenv("REDIS_TEST_ADDR")
	if url == "" || addr == "" {
		t.Skip("MONGO_TEST_URL or REDIS_TEST_ADDR not set")
	}
	c := &config.Config{
		Mongo: config.Mongo{URL: url, DB: "recruit_test"},
		Cache: cache.CacheConf{{RedisConf: redis.RedisConf{Host: addr, Type: redis.NodeType}, Weight: 100}},
	}
	return NewConversationMongoMapper(c)
}

func now() time.Time { return time.Now().Truncate(time.Millisecond) }

func TestFindOrCreateIsIdempotent(t *testing.T) {
	m := newTestMapper(t)
	ctx := context.Background()
	a, b, job := bson.NewObjectID(), bson.NewObjectID(), bson.NewObjectID()

	c1, err := m.FindOrCreate(ctx, a, b, NewScope(job, bson.NilObjectID), now())
	require.NoError(t, err)
	c2, err := m.FindOrCreate(ctx, b, a, NewScope(job, bson.NilObjectID), now())
	require.NoError(t, err)
	assert.Equal(t, c1.ID, c2.ID)
	assert.Equal(t, []bson.ObjectID{a, b}, c2.Participants)

	other, err := m.FindOrCreate(ctx, a, b, NewScope(bson.NewObjectID(), bson.NilObjectID), now())
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, other.ID)
}

func TestFindOrCreateConcurrent(t *testing.T) {
	m := newTestMapper(t)
	ctx := context.Background()
	a, b := bson.NewObjectID(), bson.NewObjectID()

	var wg sync.WaitGroup
	ids := make([]bson.ObjectID, 8)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := m.FindOrCreate(ctx, a, b, Scope{}, now())
			if assert.NoError(t, err) {
				ids[i] = c.ID
			}
		}(i)
	}
	wg.Wait()
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestHideDeleteAndUnhide(t *testing.T) {
	m := newTestMapper(t)
	ctx := context.Background()
	a, b := bson.NewObjectID(), bson.NewObjectID()

	c, err := m.FindOrCreate(ctx, a, b, Scope{}, now())
	require.NoError(t, err)

	require.NoError(t, m.Hide(ctx, c.ID, b))
	require.NoError(t, m.Hide(ctx, c.ID, b))
	got, err := m.FindById(ctx, c.ID, b)
	require.NoError(t, err)
	assert.Equal(t, []bson.ObjectID{b}, got.HiddenBy)

	// a再次发送时, b重新可见
	_, err = m.FindOrCreate(ctx, a, b, Scope{}, now())
	require.NoError(t, err)
	got, err = m.FindById(ctx, c.ID, b)
	require.NoError(t, err)
	assert.False(t, got.IsHiddenBy(b))

	at := now()
	require.NoError(t, m.Hide(ctx, c.ID, a))
	require.NoError(t, m.Delete(ctx, c.ID, a, at))
	got, err = m.FindById(ctx, c.ID, a)
	require.NoError(t, err)
	assert.False(t, got.IsHiddenBy(a))
	h, ok := got.Horizon(a)
	assert.True(t, ok)
	assert.True(t, h.Equal(at))

	assert.ErrorIs(t, m.Hide(ctx, c.ID, bson.NewObjectID()), ErrNotFound)
	_, err = m.FindById(ctx, c.ID, bson.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAppendMessageKeepsOrder(t *testing.T) {
	m := newTestMapper(t)
	ctx := context.Background()
	a, b := bson.NewObjectID(), bson.NewObjectID()

	c, err := m.FindOrCreate(ctx, a, b, Scope{}, now())
	require.NoError(t, err)
	m1, m2 := bson.NewObjectID(), bson.NewObjectID()
	require.NoError(t, m.AppendMessage(ctx, c.ID, m1, now()))
	require.NoError(t, m.AppendMessage(ctx, c.ID, m2, now()))

	got, err := m.FindById(ctx, c.ID, a)
	require.NoError(t, err)
	assert.Equal(t, []bson.ObjectID{m1, m2}, got.Messages)

	cs, err := m.ListByParticipant(ctx, b)
	require.NoError(t, err)
	require.Len(t, cs, 1)
	assert.Equal(t, c.ID, cs[0].ID)
}
