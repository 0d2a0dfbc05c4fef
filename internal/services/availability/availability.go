// Package availability проверяет доступность дома на интервал дат
// по множеству существующих аренд.
//
// Чтение идёт напрямую из основного хранилища, мимо кэша: это
// критичное для корректности чтение, устаревший список аренд здесь
// недопустим.
package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/homefind/rental-backend/internal/models"
)

// RentalLister читает все аренды дома из основного хранилища.
type RentalLister interface {
	ListRentalsByHouse(ctx context.Context, houseID string) ([]*models.Rental, error)
}

// Checker проверяет пересечение запрошенного интервала с арендами дома.
type Checker struct {
	rentals RentalLister
}

// New создает новый Checker.
func New(rentals RentalLister) *Checker {
	return &Checker{rentals: rentals}
}

// Overlaps сообщает, пересекается ли интервал [start, end] с арендой r.
// Интервалы закрытые с обеих сторон: совпадение границ (start == r.EndDate
// или end == r.StartDate) считается пересечением. Это зафиксированное
// бизнес-правило, день выезда и день заезда следующей аренды совпадать
// не могут.
func Overlaps(start, end time.Time, r *models.Rental) bool {
	return !(start.After(r.EndDate) || end.Before(r.StartDate))
}

// IsAvailable возвращает true, если ни одна из существующих аренд дома
// не пересекается с интервалом [start, end]. Пустое множество аренд
// означает доступность. Сложность O(n) по числу аренд дома.
func (c *Checker) IsAvailable(ctx context.Context, houseID string, start, end time.Time) (bool, error) {
	const op = "availability.IsAvailable"
	rentals, err := c.rentals.ListRentalsByHouse(ctx, houseID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	for _, r := range rentals {
		if Overlaps(start, end, r) {
			return false, nil
		}
	}
	return true, nil
}
