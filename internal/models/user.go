// Package models содержит доменные структуры объявлений, аренды и пользователей,
// а также вспомогательные Dummy-типы для приёма данных из JSON-запросов
// до их валидации и преобразования.
package models

// DeletedUserID сентинельный идентификатор владельца: дома удалённых
// пользователей переводятся на него, аренда таких домов запрещена.
const DeletedUserID = "deleted-user"

// User представляет зарегистрированного пользователя системы.
// Идентификатором служит уникальный никнейм.
type User struct {
	ID           string `bson:"_id" json:"id"`                     // Никнейм пользователя (уникальный)
	Name         string `bson:"name" json:"name"`                  // Отображаемое имя
	PasswordHash string `bson:"password_hash" json:"-"`            // bcrypt-хэш пароля
	PhotoID      string `bson:"photo_id,omitempty" json:"photo_id,omitempty"` // Идентификатор фото в блоб-хранилище
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	ID       string `json:"id" validate:"required,alphanum"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	PhotoID  string `json:"photo_id,omitempty" validate:"omitempty"`
}

// DummyLogin используется для приёма данных входа из JSON-запроса.
type DummyLogin struct {
	ID       string `json:"id" validate:"required"`
	Password string `json:"password" validate:"required"`
}
