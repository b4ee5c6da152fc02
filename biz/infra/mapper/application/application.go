package application

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Application 学生对职位的一次投递
type Application struct {
	ID         bson.ObjectID `json:"id" bson:"_id"`
	JobId      bson.ObjectID `json:"job_id" bson:"job_id"`
	StudentId  bson.ObjectID `json:"student_id" bson:"student_id"`
	Status     string        `json:"status" bson:"status"` // 由投递服务维护, 原样透出
	CreateTime time.Time     `json:"create_time" bson:"create_time"`
}
