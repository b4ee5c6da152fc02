package message

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Message 一条从发送者到接收者的消息, 归属关系由对话的messages记录
type Message struct {
	ID         bson.ObjectID `json:"id" bson:"_id"`
	SenderId   bson.ObjectID `json:"sender_id" bson:"sender_id"`
	ReceiverId bson.ObjectID `json:"receiver_id" bson:"receiver_id"`
	Content    string        `json:"message" bson:"message"`         // 消息文本
	IsRead     bool          `json:"is_read" bson:"is_read"`         // 创建时为false, 只会被接收者置为true
	CreateTime time.Time     `json:"create_time" bson:"create_time"` // 创建后不再修改
}

// Digest 收件箱计算所需的消息投影
type Digest struct {
	ID         bson.ObjectID `bson:"_id"`
	SenderId   bson.ObjectID `bson:"sender_id"`
	ReceiverId bson.ObjectID `bson:"receiver_id"`
	IsRead     bool          `bson:"is_read"`
	CreateTime time.Time     `bson:"create_time"`
}
