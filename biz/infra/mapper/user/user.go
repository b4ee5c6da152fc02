package user

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User 用户资料, 由账号服务维护, 这里只读
type User struct {
	ID         bson.ObjectID `json:"id" bson:"_id,omitempty"`          // ID
	Name       string        `json:"name" bson:"name,omitempty"`       // 用户名
	Avatar     string        `json:"avatar" bson:"avatar,omitempty"`   // 头像
	Email      string        `json:"email" bson:"email,omitempty"`     // 邮箱
	Role       string        `json:"role" bson:"role"`                 // student / recruiter / admin
	Company    string        `json:"company" bson:"company,omitempty"` // 招聘者所属公司
	CreateTime time.Time     `json:"create_time" bson:"create_time"`
	UpdateTime time.Time     `json:"update_time" bson:"update_time"`
}
