// Package house реализует бизнес-логику объявлений: создание с проверкой
// владельца и фото, чтение через кэш, частичное обновление и удаление
// вместе с арендами дома.
package house

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/homefind/rental-backend/internal/apperr"
	"github.com/homefind/rental-backend/internal/lib/sl"
	"github.com/homefind/rental-backend/internal/models"
)

const cacheTTL = time.Hour

// PageSize размер страницы списка объявлений.
const PageSize = 10

// HouseRepository описывает контракт хранилища объявлений.
type HouseRepository interface {
	CreateHouse(ctx context.Context, house models.House) error
	GetHouse(ctx context.Context, id string) (*models.House, error)
	UpdateHouse(ctx context.Context, house models.House) error
	DeleteHouse(ctx context.Context, id string) error
	ListHouses(ctx context.Context, limit, offset int) ([]*models.House, error)
}

// UserRepository описывает нужную сервису часть хранилища пользователей.
type UserRepository interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// RentalCleaner удаляет аренды дома при удалении объявления.
type RentalCleaner interface {
	DeleteRentalsByHouse(ctx context.Context, houseID string) error
}

// MediaChecker проверяет существование медиафайла по ссылке.
type MediaChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Cache описывает нужную сервису часть побочного кэша.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует операции над объявлениями.
type Service struct {
	houses  HouseRepository
	users   UserRepository
	rentals RentalCleaner
	media   MediaChecker
	cache   Cache
	log     *slog.Logger
}

// New создает новый Service.
func New(houses HouseRepository, users UserRepository, rentals RentalCleaner,
	media MediaChecker, cache Cache, log *slog.Logger) *Service {
	return &Service{
		houses:  houses,
		users:   users,
		rentals: rentals,
		media:   media,
		cache:   cache,
		log:     log,
	}
}

func houseKey(id string) string { return fmt.Sprintf("house:%s", id) }

func (s *Service) checkPhoto(ctx context.Context, photoID string) error {
	if photoID == "" {
		return nil
	}
	exists, err := s.media.Exists(ctx, photoID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.E(apperr.KindBadRequest, "media", photoID, "referenced photo does not exist")
	}
	return nil
}

// Create сохраняет новое объявление. Владельцем становится пользователь
// сессии, он обязан существовать; ссылка на фото, если задана, обязана
// указывать на существующий файл.
func (s *Service) Create(ctx context.Context, sessionUser string, req models.DummyHouse) (*models.House, error) {
	const op = "services.house.Create"

	if _, err := s.users.GetUser(ctx, sessionUser); err != nil {
		return nil, err
	}
	if err := s.checkPhoto(ctx, req.PhotoID); err != nil {
		return nil, err
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	house := models.House{
		ID:          id,
		Name:        req.Name,
		Location:    strings.ToLower(strings.TrimSpace(req.Location)),
		Description: req.Description,
		PhotoID:     req.PhotoID,
		OwnerID:     sessionUser,
		Price:       req.Price,
		Discount:    req.Discount,
	}

	if err := s.houses.CreateHouse(ctx, house); err != nil {
		return nil, err
	}
	s.log.Info("created new house", slog.String("op", op), slog.String("id", id))

	if err := s.cache.Set(houseKey(id), house, cacheTTL); err != nil {
		s.log.Warn("failed to cache house", slog.String("op", op), sl.Err(err))
	}
	return &house, nil
}

// Get возвращает объявление через кэш с освежением записи при промахе.
func (s *Service) Get(ctx context.Context, id string) (*models.House, error) {
	const op = "services.house.Get"

	var cached models.House
	found, err := s.cache.Get(houseKey(id), &cached)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("op", op), sl.Err(err))
	}
	if found && err == nil {
		return &cached, nil
	}

	house, err := s.houses.GetHouse(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(houseKey(id), house, cacheTTL); err != nil {
		s.log.Warn("failed to refresh house cache entry", slog.String("op", op), sl.Err(err))
	}
	return house, nil
}

// Update применяет только явно переданные поля. Менять объявление может
// только его владелец.
func (s *Service) Update(ctx context.Context, sessionUser, id string, req models.DummyHouseUpdate) (*models.House, error) {
	const op = "services.house.Update"

	house, err := s.houses.GetHouse(ctx, id)
	if err != nil {
		return nil, err
	}
	if house.OwnerID != sessionUser {
		return nil, apperr.E(apperr.KindUnauthorized, "house", id, "session does not belong to house owner")
	}

	if req.PhotoID != nil {
		if err := s.checkPhoto(ctx, *req.PhotoID); err != nil {
			return nil, err
		}
		house.PhotoID = *req.PhotoID
	}
	if req.Name != nil {
		house.Name = *req.Name
	}
	if req.Description != nil {
		house.Description = *req.Description
	}
	if req.Price != nil {
		house.Price = *req.Price
	}
	if req.Discount != nil {
		house.Discount = *req.Discount
	}

	if err := s.houses.UpdateHouse(ctx, *house); err != nil {
		return nil, err
	}
	s.log.Info("updated house", slog.String("op", op), slog.String("id", id))

	if err := s.cache.Set(houseKey(id), house, cacheTTL); err != nil {
		s.log.Warn("failed to cache house", slog.String("op", op), sl.Err(err))
	}
	return house, nil
}

// Delete удаляет объявление вместе с его арендами. Ссылки на аренды у
// дома слабые, поэтому подчистка записей — обязанность этой операции.
func (s *Service) Delete(ctx context.Context, sessionUser, id string) error {
	const op = "services.house.Delete"

	house, err := s.houses.GetHouse(ctx, id)
	if err != nil {
		return err
	}
	if house.OwnerID != sessionUser {
		return apperr.E(apperr.KindUnauthorized, "house", id, "session does not belong to house owner")
	}

	if err := s.rentals.DeleteRentalsByHouse(ctx, id); err != nil {
		return err
	}
	if err := s.houses.DeleteHouse(ctx, id); err != nil {
		return err
	}
	if err := s.cache.Invalidate(houseKey(id)); err != nil {
		s.log.Warn("failed to evict house cache entry", slog.String("op", op), sl.Err(err))
	}
	return nil
}

// List возвращает страницу объявлений со сдвигом offset.
func (s *Service) List(ctx context.Context, offset int) ([]*models.House, error) {
	return s.houses.ListHouses(ctx, PageSize, offset)
}
