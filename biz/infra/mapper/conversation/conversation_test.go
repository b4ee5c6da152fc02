package conversation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestScopeKey(t *testing.T) {
	job, app := bson.NewObjectID(), bson.NewObjectID()

	assert.Equal(t, "direct", NewScope(bson.NilObjectID, bson.NilObjectID).Key())
	assert.Equal(t, "job:"+job.Hex(), NewScope(job, bson.NilObjectID).Key())
	assert.Equal(t, "application:"+app.Hex(), NewScope(bson.NilObjectID, app).Key())

	// 投递优先
	s := NewScope(job, app)
	assert.True(t, s.JobId.IsZero())
	assert.Equal(t, "application:"+app.Hex(), s.Key())
}

func TestParticipantKeyIsOrderInsensitive(t *testing.T) {
	a, b := bson.NewObjectID(), bson.NewObjectID()
	assert.Equal(t, ParticipantKey(a, b), ParticipantKey(b, a))
	assert.NotEqual(t, ParticipantKey(a, b), ParticipantKey(a, bson.NewObjectID()))
}

func TestConversationAccessors(t *testing.T) {
	a, b, other := bson.NewObjectID(), bson.NewObjectID(), bson.NewObjectID()
	at := time.Now()
	c := &Conversation{
		Participants: []bson.ObjectID{a, b},
		HiddenBy:     []bson.ObjectID{b},
		DeletedBy:    map[string]time.Time{a.Hex(): at},
	}

	assert.Equal(t, b, c.Partner(a))
	assert.Equal(t, a, c.Partner(b))
	assert.True(t, c.Partner(other).IsZero())

	assert.True(t, c.IsHiddenBy(b))
	assert.False(t, c.IsHiddenBy(a))

	h, ok := c.Horizon(a)
	assert.True(t, ok)
	assert.Equal(t, at, h)
	_, ok = c.Horizon(b)
	assert.False(t, ok)

	_, ok = (&Conversation{}).Horizon(a)
	assert.False(t, ok)
}
