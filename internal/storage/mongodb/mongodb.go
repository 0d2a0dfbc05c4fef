// Package mongodb реализует основное хранилище данных на основе MongoDB.
// Каждая сущность живёт в своей коллекции, идентификатор сущности хранится
// в _id, поэтому вставка с занятым id атомарно завершается ошибкой дубликата.
// Ошибки "не найдено" и "дубликат id" возвращаются в доменной таксономии
// apperr, транспортные сбои оборачиваются как внутренние.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Storage инкапсулирует подключение к MongoDB и хранилища коллекций.
type Storage struct {
	client *mongo.Client

	Users     *UserStore
	Houses    *HouseStore
	Rentals   *RentalStore
	Questions *QuestionStore
}

// New создаёт подключение к MongoDB и инициализирует хранилища коллекций.
func New(ctx context.Context, uri, database string) (*Storage, error) {
	const op = "mongodb.New"

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db := client.Database(database)
	return &Storage{
		client:    client,
		Users:     &UserStore{col: db.Collection("users")},
		Houses:    &HouseStore{col: db.Collection("houses")},
		Rentals:   &RentalStore{col: db.Collection("rentals")},
		Questions: &QuestionStore{col: db.Collection("questions")},
	}, nil
}

// Close разрывает подключение к базе.
func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
