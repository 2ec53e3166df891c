package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Object types a like can point at.
const (
	ObjectTypePost    = "post"
	ObjectTypeComment = "comment"
)

// Like is unique per (user_id, object_id, obj_type), enforced by a compound
// index on the collection.
type Like struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	ObjectID  string             `bson:"object_id" json:"object_id"`
	ObjType   string             `bson:"obj_type" json:"obj_type"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
