package job

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Job 招聘者发布的职位
type Job struct {
	ID          bson.ObjectID `json:"id" bson:"_id"`
	Title       string        `json:"title" bson:"title"`
	Company     string        `json:"company" bson:"company,omitempty"`
	RecruiterId bson.ObjectID `json:"recruiter_id" bson:"recruiter_id"` // 发布者
	CreateTime  time.Time     `json:"create_time" bson:"create_time"`
}
