package util

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

func ObjectIDsFromHex(ids ...string) ([]bson.ObjectID, error) {
	var objectIDs []bson.ObjectID
	for _, id := range ids {
		oid, err := bson.ObjectIDFromHex(id)
		if err != nil {
			return nil, err
		}
		objectIDs = append(objectIDs, oid)
	}
	return objectIDs, nil
}

// OptionalObjectID 空字符串视为未设置, 返回零值
func OptionalObjectID(id string) (bson.ObjectID, error) {
	if id == "" {
		return bson.NilObjectID, nil
	}
	return bson.ObjectIDFromHex(id)
}

// Hex 零值ObjectID返回空字符串
func Hex(id bson.ObjectID) string {
	if id.IsZero() {
		return ""
	}
	return id.Hex()
}

// DistinctIDs 去重并跳过零值, 保持首次出现的顺序
func DistinctIDs(ids []bson.ObjectID) []bson.ObjectID {
	seen := make(map[bson.ObjectID]struct{}, len(ids))
	out := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		if id.IsZero() {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
