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

// HouseStore хранилище объявлений.
type HouseStore struct {
	col *mongo.Collection
}

// CreateHouse сохраняет новое объявление, id объявления служит _id.
func (s *HouseStore) CreateHouse(ctx context.Context, house models.House) error {
	const op = "mongodb.CreateHouse"
	_, err := s.col.InsertOne(ctx, house)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.E(apperr.KindConflict, "house", house.ID, "house already exists")
	}
	if err != nil {
		return apperr.Wrap(op, err)
	}
	return nil
}

// GetHouse возвращает объявление по id.
func (s *HouseStore) GetHouse(ctx context.Context, id string) (*models.House, error) {
	const op = "mongodb.GetHouse"
	var house models.House
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&house)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.E(apperr.KindNotFound, "house", id, "house does not exist")
	}
	if err != nil {
		return nil, apperr.Wrap(op, err)
	}
	return &house, nil
}

// UpdateHouse заменяет изменяемые поля объявления.
func (s *HouseStore) UpdateHouse(ctx context.Context, house models.House) error {
	const op = "mongodb.UpdateHouse"
	update := bson.M{"$set": bson.M{
		"name":        house.Name,
		"description": house.Description,
		"photo_id":    house.PhotoID,
		"price":       house.Price,
		"discount":    house.Discount,
	}}
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": house.ID}, update)
	if err != nil {
		return apperr.Wrap(op, err)
	}
	if res.MatchedCount == 0 {
		return apperr.E(apperr.KindNotFound, "house", house.ID, "house does not exist")
	}
	return nil
}

// DeleteHouse удаляет объявление по id.
func (s *HouseStore) DeleteHouse(ctx context.Context, id string) error {
	const op = "mongodb.DeleteHouse"
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Wrap(op, err)
	}
	if res.DeletedCount == 0 {
		return apperr.E(apperr.KindNotFound, "house", id, "house does not exist")
	}
	return nil
}

// ListHouses возвращает страницу объявлений, отсортированных по _id.
func (s *HouseStore) ListHouses(ctx context.Context, limit, offset int) ([]*models.House, error) {
	const op = "mongodb.ListHouses"
	opts := options.Find().
		SetSort(bson.M{"_id": 1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperr.Wrap(op, err)
	}
	defer cursor.Close(ctx)

	var houses []*models.House
	if err := cursor.All(ctx, &houses); err != nil {
		return nil, apperr.Wrap(op, err)
	}
	return houses, nil
}

// AttachRental атомарно увеличивает счётчик аренд и добавляет id аренды
// в список слабых ссылок объявления.
func (s *HouseStore) AttachRental(ctx context.Context, houseID, rentalID string) error {
	const op = "mongodb.AttachRental"
	update := bson.M{
		"$inc":  bson.M{"rentals_counter": 1},
		"$push": bson.M{"rental_ids": rentalID},
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": houseID}, update)
	if err != nil {
		return apperr.Wrap(op, err)
	}
	if res.MatchedCount == 0 {
		return apperr.E(apperr.KindNotFound, "house", houseID, "house does not exist")
	}
	return nil
}

// DetachRental убирает id аренды из списка ссылок объявления.
// Счётчик аренд не уменьшается: он отражает историю, а не текущее состояние.
func (s *HouseStore) DetachRental(ctx context.Context, houseID, rentalID string) error {
	const op = "mongodb.DetachRental"
	update := bson.M{"$pull": bson.M{"rental_ids": rentalID}}
	if _, err := s.col.UpdateOne(ctx, bson.M{"_id": houseID}, update); err != nil {
		return apperr.Wrap(op, err)
	}
	return nil
}

// ReassignOwner переводит все объявления владельца на нового владельца.
// Используется при удалении пользователя для перевода на сентинель.
func (s *HouseStore) ReassignOwner(ctx context.Context, ownerID, newOwnerID string) error {
	const op = "mongodb.ReassignOwner"
	update := bson.M{"$set": bson.M{"owner_id": newOwnerID}}
	if _, err := s.col.UpdateMany(ctx, bson.M{"owner_id": ownerID}, update); err != nil {
		return apperr.Wrap(op, err)
	}
	return nil
}

// FindDiscountCandidates возвращает до limit объявлений без уценки,
// у которых счётчик аренд не превышает maxCounter.
func (s *HouseStore) FindDiscountCandidates(ctx context.Context, maxCounter, limit int) ([]*models.House, error) {
	const op = "mongodb.FindDiscountCandidates"
	filter := bson.M{
		"rentals_counter": bson.M{"$lte": maxCounter},
		"discount":        0,
	}
	opts := options.Find().SetSort(bson.M{"_id": 1}).SetLimit(int64(limit))
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Wrap(op, err)
	}
	defer cursor.Close(ctx)

	var houses []*models.House
	if err := cursor.All(ctx, &houses); err != nil {
		return nil, apperr.Wrap(op, err)
	}
	return houses, nil
}

// SetDiscount выставляет уценку объявления.
func (s *HouseStore) SetDiscount(ctx context.Context, id string, discount int) error {
	const op = "mongodb.SetDiscount"
	update := bson.M{"$set": bson.M{"discount": discount}}
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return apperr.Wrap(op, err)
	}
	if res.MatchedCount == 0 {
		return apperr.E(apperr.KindNotFound, "house", id, "house does not exist")
	}
	return nil
}
