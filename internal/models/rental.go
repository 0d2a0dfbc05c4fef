package models

import "time"

// DateLayout формат дат начала и конца аренды в JSON-запросах.
const DateLayout = "2006-01-02"

// Rental представляет оформленную аренду дома на интервал дат.
// Интервал [StartDate, EndDate] включает обе границы: день выезда
// и день заезда следующей аренды совпадать не могут.
// Price вычисляется на сервере при создании и не принимается от клиента.
type Rental struct {
	ID        string    `bson:"_id" json:"id"`
	HouseID   string    `bson:"house_id" json:"house_id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Price     int       `bson:"price" json:"price"`
	StartDate time.Time `bson:"start_date" json:"start_date"`
	EndDate   time.Time `bson:"end_date" json:"end_date"`
}

// DummyRental используется для приёма данных новой аренды из JSON-запроса.
// Даты приходят строками в формате 2006-01-02 и парсятся вручную.
type DummyRental struct {
	UserID    string `json:"user_id" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

// DummyRentalUpdate описывает частичное обновление аренды.
// Сейчас владелец дома может менять только цену.
type DummyRentalUpdate struct {
	Price *int `json:"price,omitempty" validate:"omitempty,gt=0"`
}

// RentalEvent сообщение о событии аренды, публикуемое в брокер.
type RentalEvent struct {
	Type     string `json:"type"` // "created" или "deleted"
	RentalID string `json:"rental_id"`
	HouseID  string `json:"house_id"`
	UserID   string `json:"user_id"`
}
