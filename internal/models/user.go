package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents one registered identity. A user always carries at least one
// proof of identity: a password hash or a Google subject id.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username      string             `bson:"username" json:"username"`
	Email         string             `bson:"email" json:"email"`
	PasswordHash  string             `bson:"password_hash,omitempty" json:"-"`
	GoogleID      string             `bson:"google_id,omitempty" json:"-"`
	ImgURL        string             `bson:"img_url,omitempty" json:"img_url,omitempty"`
	RefreshTokens []string           `bson:"refresh_tokens" json:"-"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// AuthTokens is the response of every operation that issues a token pair.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
	UserID       string `json:"user_id"`
	Username     string `json:"username,omitempty"`
}
