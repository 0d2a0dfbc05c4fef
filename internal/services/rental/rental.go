// Package rental реализует жизненный цикл аренды: создание с проверкой
// доступности, чтение, обновление цены, удаление и постраничный список.
//
// Создание сериализуется по id дома внутренним мьютексом: проверка
// доступности и вставка не атомарны на уровне хранилища, и без
// сериализации два конкурентных запроса с пересекающимися интервалами
// могли бы оба пройти проверку. Блокировка процесс-локальная; для
// многопроцессного развёртывания нужен внешний замок.
package rental

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/homefind/rental-backend/internal/apperr"
	"github.com/homefind/rental-backend/internal/lib/sl"
	"github.com/homefind/rental-backend/internal/models"
)

const (
	cacheTTL     = time.Hour
	listCacheTTL = 5 * time.Minute
	// PageSize размер страницы списка аренд.
	PageSize = 10
)

// RentalRepository описывает контракт хранилища аренд.
type RentalRepository interface {
	CreateRental(ctx context.Context, rental models.Rental) error
	GetRental(ctx context.Context, id string) (*models.Rental, error)
	UpdateRentalPrice(ctx context.Context, id string, price int) error
	DeleteRental(ctx context.Context, id string) error
	ListRentalsByHousePage(ctx context.Context, houseID string, limit, offset int) ([]*models.Rental, error)
}

// HouseRepository описывает нужную сервису часть хранилища объявлений.
type HouseRepository interface {
	GetHouse(ctx context.Context, id string) (*models.House, error)
	AttachRental(ctx context.Context, houseID, rentalID string) error
	DetachRental(ctx context.Context, houseID, rentalID string) error
}

// UserRepository описывает нужную сервису часть хранилища пользователей.
type UserRepository interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// AvailabilityChecker проверяет доступность дома на интервал дат.
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, houseID string, start, end time.Time) (bool, error)
}

// Cache описывает интерфейс побочного кэша.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
	PushList(key string, value any, expiration time.Duration) error
	GetList(key string) ([]string, error)
	TrimList(key string, start, stop int64) error
}

// EventPublisher публикует события аренды в брокер.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// Service оркестрирует создание, чтение, обновление и удаление аренд.
type Service struct {
	rentals RentalRepository
	houses  HouseRepository
	users   UserRepository
	checker AvailabilityChecker
	cache   Cache
	events  EventPublisher
	log     *slog.Logger

	houseLocks sync.Map // houseID -> *sync.Mutex
}

// New создает новый Service.
func New(rentals RentalRepository, houses HouseRepository, users UserRepository,
	checker AvailabilityChecker, cache Cache, events EventPublisher, log *slog.Logger) *Service {
	return &Service{
		rentals: rentals,
		houses:  houses,
		users:   users,
		checker: checker,
		cache:   cache,
		events:  events,
		log:     log,
	}
}

func rentalKey(id string) string { return fmt.Sprintf("rental:%s", id) }

func listKey(houseID string, offset int) string {
	return fmt.Sprintf("rentals:%s:offset:%d", houseID, offset)
}

func (s *Service) lockHouse(houseID string) *sync.Mutex {
	v, _ := s.houseLocks.LoadOrStore(houseID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// ParseDateRange парсит даты запроса и проверяет, что конец не раньше начала.
func ParseDateRange(start, end string) (time.Time, time.Time, error) {
	from, err := time.Parse(models.DateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.E(apperr.KindBadRequest, "rental", "", "invalid start date")
	}
	to, err := time.Parse(models.DateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.E(apperr.KindBadRequest, "rental", "", "invalid end date")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, apperr.E(apperr.KindBadRequest, "rental", "", "end date is before start date")
	}
	return from, to, nil
}

// Create оформляет аренду дома на интервал дат.
//
// Порядок проверок фиксирован: арендатор существует, сессия принадлежит
// арендатору, даты корректны, дом существует и не осиротел, интервал
// свободен. Цена вычисляется на сервере: ночи умножаются на цену дома
// за вычетом уценки. Любая неудавшаяся проверка прерывает операцию до
// каких-либо записей; счётчик аренд дома увеличивается только после
// успешной вставки, поэтому посчитанная аренда всегда есть в хранилище.
func (s *Service) Create(ctx context.Context, sessionUser, houseID string, req models.DummyRental) (*models.Rental, error) {
	const op = "services.rental.Create"
	log := s.log.With(slog.String("op", op), slog.String("house_id", houseID))

	if _, err := s.users.GetUser(ctx, req.UserID); err != nil {
		return nil, err
	}
	if sessionUser != req.UserID {
		return nil, apperr.E(apperr.KindUnauthorized, "rental", "", "session does not belong to renter")
	}

	start, end, err := ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	lock := s.lockHouse(houseID)
	lock.Lock()
	defer lock.Unlock()

	house, err := s.houses.GetHouse(ctx, houseID)
	if err != nil {
		return nil, err
	}
	if house.OwnerID == models.DeletedUserID {
		return nil, apperr.E(apperr.KindForbidden, "house", houseID, "owner is deleted")
	}

	available, err := s.checker.IsAvailable(ctx, houseID, start, end)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, apperr.E(apperr.KindConflict, "house", houseID, "dates overlap an existing rental")
	}

	nights := int(end.Sub(start).Hours() / 24)
	rental := models.Rental{
		ID:        uuid.NewString(),
		HouseID:   houseID,
		UserID:    req.UserID,
		Price:     nights * (house.Price - house.Discount),
		StartDate: start,
		EndDate:   end,
	}

	// Вставка с занятым _id атомарно завершается Conflict: проигравший
	// гонку за id не затирает чужую запись.
	if err := s.rentals.CreateRental(ctx, rental); err != nil {
		return nil, err
	}
	log.Info("created new rental", slog.String("id", rental.ID))

	if err := s.cache.Set(rentalKey(rental.ID), rental, cacheTTL); err != nil {
		log.Warn("failed to cache rental", slog.String("key", rentalKey(rental.ID)), sl.Err(err))
	}
	if err := s.houses.AttachRental(ctx, houseID, rental.ID); err != nil {
		log.Warn("failed to attach rental to house", sl.Err(err))
	}
	if err := s.cache.Invalidate(fmt.Sprintf("house:%s", houseID)); err != nil {
		log.Warn("failed to invalidate house cache entry", sl.Err(err))
	}

	if err := s.events.Publish("rental.created", models.RentalEvent{
		Type:     "created",
		RentalID: rental.ID,
		HouseID:  houseID,
		UserID:   rental.UserID,
	}); err != nil {
		log.Warn("failed to publish rental event", sl.Err(err))
	}

	return &rental, nil
}

// Get возвращает аренду, проверяя её принадлежность дому из пути запроса.
// Любое успешное чтение освежает запись кэша: и попадание, и чтение
// из хранилища заново выставляют TTL, горячие записи не истекают.
func (s *Service) Get(ctx context.Context, houseID, id string) (*models.Rental, error) {
	const op = "services.rental.Get"

	var cached models.Rental
	found, err := s.cache.Get(rentalKey(id), &cached)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("op", op), sl.Err(err))
	}
	if found && err == nil {
		if cached.HouseID != houseID {
			return nil, apperr.E(apperr.KindBadRequest, "rental", id, "rental does not belong to house")
		}
		if err := s.cache.Set(rentalKey(id), cached, cacheTTL); err != nil {
			s.log.Warn("failed to refresh rental cache entry", slog.String("op", op), sl.Err(err))
		}
		return &cached, nil
	}

	rental, err := s.rentals.GetRental(ctx, id)
	if err != nil {
		return nil, err
	}
	if rental.HouseID != houseID {
		return nil, apperr.E(apperr.KindBadRequest, "rental", id, "rental does not belong to house")
	}

	if err := s.cache.Set(rentalKey(id), rental, cacheTTL); err != nil {
		s.log.Warn("failed to refresh rental cache entry", slog.String("op", op), sl.Err(err))
	}
	return rental, nil
}

// Update применяет только явно переданные поля аренды (сейчас — цену).
// Менять цену может только владелец дома. Запись идёт сквозной:
// сначала хранилище, затем кэш.
func (s *Service) Update(ctx context.Context, sessionUser, houseID, id string, req models.DummyRentalUpdate) (*models.Rental, error) {
	const op = "services.rental.Update"

	house, err := s.houses.GetHouse(ctx, houseID)
	if err != nil {
		return nil, err
	}
	if sessionUser != house.OwnerID {
		return nil, apperr.E(apperr.KindUnauthorized, "house", houseID, "session does not belong to house owner")
	}

	rental, err := s.rentals.GetRental(ctx, id)
	if err != nil {
		return nil, err
	}
	if rental.HouseID != houseID {
		return nil, apperr.E(apperr.KindBadRequest, "rental", id, "rental does not belong to house")
	}

	if req.Price == nil {
		// Нет распознанных полей: запись остаётся нетронутой.
		return rental, nil
	}

	if err := s.rentals.UpdateRentalPrice(ctx, id, *req.Price); err != nil {
		return nil, err
	}
	rental.Price = *req.Price
	s.log.Info("updated rental price", slog.String("op", op), slog.String("id", id))

	if err := s.cache.Set(rentalKey(id), rental, cacheTTL); err != nil {
		s.log.Warn("failed to cache rental", slog.String("op", op), sl.Err(err))
	}
	return rental, nil
}

// Delete удаляет аренду после проверки её принадлежности дому.
// Удалить может арендатор или владелец дома. Запись из кэша
// вытесняется, мягкого удаления нет.
func (s *Service) Delete(ctx context.Context, sessionUser, houseID, id string) error {
	const op = "services.rental.Delete"

	house, err := s.houses.GetHouse(ctx, houseID)
	if err != nil {
		return err
	}
	rental, err := s.rentals.GetRental(ctx, id)
	if err != nil {
		return err
	}
	if rental.HouseID != houseID {
		return apperr.E(apperr.KindBadRequest, "rental", id, "rental does not belong to house")
	}
	if sessionUser != rental.UserID && sessionUser != house.OwnerID {
		return apperr.E(apperr.KindUnauthorized, "rental", id, "session does not belong to renter or house owner")
	}

	if err := s.rentals.DeleteRental(ctx, id); err != nil {
		return err
	}
	if err := s.cache.Invalidate(rentalKey(id)); err != nil {
		s.log.Warn("failed to evict rental cache entry", slog.String("op", op), sl.Err(err))
	}
	if err := s.houses.DetachRental(ctx, houseID, id); err != nil {
		s.log.Warn("failed to detach rental from house", slog.String("op", op), sl.Err(err))
	}

	if err := s.events.Publish("rental.deleted", models.RentalEvent{
		Type:     "deleted",
		RentalID: id,
		HouseID:  houseID,
		UserID:   rental.UserID,
	}); err != nil {
		s.log.Warn("failed to publish rental event", slog.String("op", op), sl.Err(err))
	}
	return nil
}

// List возвращает страницу аренд дома со сдвигом offset.
// Сначала проверяется списковый ключ кэша; при промахе страница
// читается из хранилища и складывается в кэш с TTL.
func (s *Service) List(ctx context.Context, houseID string, offset int) ([]*models.Rental, error) {
	const op = "services.rental.List"

	if _, err := s.houses.GetHouse(ctx, houseID); err != nil {
		return nil, err
	}

	key := listKey(houseID, offset)
	cached, err := s.cache.GetList(key)
	if err != nil {
		s.log.Warn("cache list read failed", slog.String("op", op), sl.Err(err))
	}
	if err == nil && len(cached) > 0 {
		rentals := make([]*models.Rental, 0, len(cached))
		for _, raw := range cached {
			var r models.Rental
			if err := json.Unmarshal([]byte(raw), &r); err != nil {
				rentals = nil
				break
			}
			rentals = append(rentals, &r)
		}
		if rentals != nil {
			return rentals, nil
		}
	}

	rentals, err := s.rentals.ListRentalsByHousePage(ctx, houseID, PageSize, offset)
	if err != nil {
		return nil, err
	}

	for _, r := range rentals {
		if err := s.cache.PushList(key, r, listCacheTTL); err != nil {
			s.log.Warn("failed to cache rental list", slog.String("op", op), sl.Err(err))
			break
		}
	}
	if err := s.cache.TrimList(key, 0, PageSize-1); err != nil {
		s.log.Warn("failed to trim rental list cache", slog.String("op", op), sl.Err(err))
	}

	return rentals, nil
}
