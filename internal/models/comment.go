package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Comment   string             `bson:"comment" json:"comment"`
	Owner     string             `bson:"owner" json:"owner"`
	OwnerName string             `bson:"owner_name,omitempty" json:"owner_name,omitempty"`
	PostID    string             `bson:"post_id" json:"post_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
