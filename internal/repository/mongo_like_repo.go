package repository

import (
	"context"
	"time"

	"github.com/fathima-sithara/social-service/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoLikeRepo struct {
	col *mongo.Collection
}

func NewMongoLikeRepo(db *mongo.Database, collection string) LikeRepository {
	col := db.Collection(collection)
	// compound index prevents duplicate likes
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "object_id", Value: 1}, {Key: "obj_type", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return &mongoLikeRepo{col: col}
}

func (r *mongoLikeRepo) Create(ctx context.Context, l *models.Like) error {
	l.CreatedAt = time.Now().UTC()
	res, err := r.col.InsertOne(ctx, l)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateLike
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		l.ID = oid
	}
	return nil
}

func (r *mongoLikeRepo) Delete(ctx context.Context, userID, objectID, objType string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"user_id": userID, "object_id": objectID, "obj_type": objType})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoLikeRepo) Exists(ctx context.Context, userID, objectID, objType string) (bool, error) {
	err := r.col.FindOne(ctx, bson.M{"user_id": userID, "object_id": objectID, "obj_type": objType}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *mongoLikeRepo) FindByObject(ctx context.Context, objectID, objType string) ([]models.Like, error) {
	cur, err := r.col.Find(ctx, bson.M{"object_id": objectID, "obj_type": objType})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	likes := []models.Like{}
	if err := cur.All(ctx, &likes); err != nil {
		return nil, err
	}
	return likes, nil
}
