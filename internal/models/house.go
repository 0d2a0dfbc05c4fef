package models

// House представляет объявление о сдаче дома.
// RentalIDs хранит только идентификаторы аренд (слабые ссылки),
// сами записи живут в отдельной коллекции.
type House struct {
	ID             string   `bson:"_id" json:"id"`
	Name           string   `bson:"name" json:"name"`
	Location       string   `bson:"location" json:"location"`
	Description    string   `bson:"description,omitempty" json:"description,omitempty"`
	PhotoID        string   `bson:"photo_id,omitempty" json:"photo_id,omitempty"`
	OwnerID        string   `bson:"owner_id" json:"owner_id"`
	Price          int      `bson:"price" json:"price"`                     // Цена за ночь
	Discount       int      `bson:"discount" json:"discount"`               // Уценка за ночь, [0,100]
	RentalsCounter int      `bson:"rentals_counter" json:"rentals_counter"` // Количество оформленных аренд
	RentalIDs      []string `bson:"rental_ids,omitempty" json:"rental_ids,omitempty"`
}

// DummyHouse используется для приёма данных нового объявления из JSON-запроса.
// ID можно задать на стороне клиента; пустое поле означает сгенерированный id.
type DummyHouse struct {
	ID          string `json:"id,omitempty" validate:"omitempty,alphanum"`
	Name        string `json:"name" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Description string `json:"description,omitempty" validate:"omitempty"`
	PhotoID     string `json:"photo_id,omitempty" validate:"omitempty"`
	Price       int    `json:"price" validate:"required,gt=0"`
	Discount    int    `json:"discount" validate:"gte=0,lte=100"`
}

// DummyHouseUpdate описывает частичное обновление объявления:
// применяются только явно переданные поля.
type DummyHouseUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty"`
	Description *string `json:"description,omitempty" validate:"omitempty"`
	PhotoID     *string `json:"photo_id,omitempty" validate:"omitempty"`
	Price       *int    `json:"price,omitempty" validate:"omitempty,gt=0"`
	Discount    *int    `json:"discount,omitempty" validate:"omitempty,gte=0,lte=100"`
}
