// Package sweep реализует фоновую уценку непопулярных объявлений:
// дома без аренд периодически получают фиксированную скидку.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/homefind/rental-backend/internal/lib/sl"
	"github.com/homefind/rental-backend/internal/models"
)

// Порог популярности: уценяются дома, которые ни разу не арендовали.
const maxRentalsCounter = 0

// HouseRepository описывает нужную сервису часть хранилища объявлений.
type HouseRepository interface {
	FindDiscountCandidates(ctx context.Context, maxCounter, limit int) ([]*models.House, error)
	SetDiscount(ctx context.Context, id string, discount int) error
}

// Cache описывает нужную сервису часть побочного кэша.
type Cache interface {
	Invalidate(key string) error
}

// Service периодически уценяет непопулярные объявления.
type Service struct {
	houses   HouseRepository
	cache    Cache
	interval time.Duration
	limit    int
	discount int
	log      *slog.Logger
}

// New создает новый Service.
func New(houses HouseRepository, cache Cache, interval time.Duration,
	limit, discount int, log *slog.Logger) *Service {
	return &Service{
		houses:   houses,
		cache:    cache,
		interval: interval,
		limit:    limit,
		discount: discount,
		log:      log,
	}
}

// Run запускает периодическую уценку до отмены контекста.
// Первый проход выполняется сразу, дальше по тикеру.
func (s *Service) Run(ctx context.Context) {
	s.runTick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runTick(ctx)
		}
	}
}

// runTick выполняет один проход уценки. Ошибки логируются и не
// прерывают работу: неудавшийся проход повторится на следующем тике.
func (s *Service) runTick(ctx context.Context) {
	s.log.Info("starting discount sweep")
	houses, err := s.houses.FindDiscountCandidates(ctx, maxRentalsCounter, s.limit)
	if err != nil {
		s.log.Error("failed to find discount candidates", sl.Err(err))
		return
	}
	if len(houses) == 0 {
		s.log.Info("no discount candidates found")
		return
	}
	s.log.Info("found discount candidates", "count", len(houses))
	for _, house := range houses {
		if err := s.houses.SetDiscount(ctx, house.ID, s.discount); err != nil {
			s.log.Error("failed to set discount",
				slog.String("house_id", house.ID), sl.Err(err))
			continue
		}
		if err := s.cache.Invalidate(fmt.Sprintf("house:%s", house.ID)); err != nil {
			s.log.Error("failed to invalidate house cache",
				slog.String("house_id", house.ID), sl.Err(err))
		}
	}
}
