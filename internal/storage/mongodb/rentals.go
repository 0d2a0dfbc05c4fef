package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/homefind/rental-backend/internal/apperr"
	"github.com/homefind/rental-backend/internal/models"
)

// RentalStore хранилище аренд.
type RentalStore struct {
	col *mongo.Collection
}

// CreateRental атомарно вставляет аренду с занятым _id только один раз:
// проигравший гонку за id получает ошибку дубликата, которая отображается
// в Conflict. Отдельное верификационное чтение после записи не требуется.
func (s *RentalStore) CreateRental(ctx context.Context, rental models.Rental) error {
	const op = "mongodb.CreateRental"
	_, err := s.col.InsertOne(ctx, rental)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.E(apperr.KindConflict, "rental", rental.ID, "rental id already taken")
	}
	if err != nil {
		return apperr.Wrap(op, err)
	}
	return nil
}

// GetRental возвращает аренду по id.
func (s *RentalStore) GetRental(ctx context.Context, id string) (*models.Rental, error) {
	const op = "mongodb.GetRental"
	var rental models.Rental
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rental)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.E(apperr.KindNotFound, "rental", id, "rental does not exist")
	}
	if err != nil {
		return nil, apperr.Wrap(op, err)
	}
	return &rental, nil
}

// UpdateRentalPrice меняет цену аренды, остальные поля неизменны.
func (s *RentalStore) UpdateRentalPrice(ctx context.Context, id string, price int) error {
	const op = "mongodb.UpdateRentalPrice"
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"price": price}})
	if err != nil {
		return apperr.Wrap(op, err)
	}
	if res.MatchedCount == 0 {
		return apperr.E(apperr.KindNotFound, "rental", id, "rental does not exist")
	}
	return nil
}

// DeleteRental удаляет аренду по id.
func (s *RentalStore) DeleteRental(ctx context.Context, id string) error {
	const op = "mongodb.DeleteRental"
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Wrap(op, err)
	}
	if res.DeletedCount == 0 {
		return apperr.E(apperr.KindNotFound, "rental", id, "rental does not exist")
	}
	return nil
}

// ListRentalsByHouse возвращает все аренды дома. Чтение идёт мимо кэша:
// на этом наборе проверяется доступность интервала дат.
func (s *RentalStore) ListRentalsByHouse(ctx context.Context, houseID string) ([]*models.Rental, error) {
	const op = "mongodb.ListRentalsByHouse"
	cursor, err := s.col.Find(ctx, bson.M{"house_id": houseID})
	if err != nil {
		return nil, apperr.Wrap(op, err)
	}
	defer cursor.Close(ctx)

	var rentals []*models.Rental
	if err := cursor.All(ctx, &rentals); err != nil {
		return nil, apperr.Wrap(op, err)
	}
	return rentals, nil
}

// ListRentalsByHousePage возвращает страницу аренд дома, отсортированных по _id.
func (s *RentalStore) ListRentalsByHousePage(ctx context.Context, houseID string, limit, offset int) ([]*models.Rental, error) {
	const op = "mongodb.ListRentalsByHousePage"
	opts := options.Find().
		SetSort(bson.M{"_id": 1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cursor, err := s.col.Find(ctx, bson.M{"house_id": houseID}, opts)
	if err != nil {
		return nil, apperr.Wrap(op, err)
	}
	defer cursor.Close(ctx)

	var rentals []*models.Rental
	if err := cursor.All(ctx, &rentals); err != nil {
		return nil, apperr.Wrap(op, err)
	}
	return rentals, nil
}

// DeleteRentalsByHouse удаляет все аренды дома. Вызывается при удалении
// объявления, чтобы не оставлять осиротевшие записи.
func (s *RentalStore) DeleteRentalsByHouse(ctx context.Context, houseID string) error {
	const op = "mongodb.DeleteRentalsByHouse"
	if _, err := s.col.DeleteMany(ctx, bson.M{"house_id": houseID}); err != nil {
		return apperr.Wrap(op, err)
	}
	return nil
}
