package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/homefind/rental-backend/internal/apperr"
	"github.com/homefind/rental-backend/internal/models"
)

// UserStore хранилище пользователей.
type UserStore struct {
	col *mongo.Collection
}

// CreateUser сохраняет нового пользователя, никнейм служит _id.
func (s *UserStore) CreateUser(ctx context.Context, user models.User) error {
	const op = "mongodb.CreateUser"
	_, err := s.col.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.E(apperr.KindConflict, "user", user.ID, "user already exists")
	}
	if err != nil {
		return apperr.Wrap(op, err)
	}
	return nil
}

// GetUser возвращает пользователя по никнейму.
func (s *UserStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	const op = "mongodb.GetUser"
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.E(apperr.KindNotFound, "user", id, "user does not exist")
	}
	if err != nil {
		return nil, apperr.Wrap(op, err)
	}
	return &user, nil
}

// DeleteUser удаляет пользователя по никнейму.
func (s *UserStore) DeleteUser(ctx context.Context, id string) error {
	const op = "mongodb.DeleteUser"
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Wrap(op, err)
	}
	if res.DeletedCount == 0 {
		return apperr.E(apperr.KindNotFound, "user", id, "user does not exist")
	}
	return nil
}
