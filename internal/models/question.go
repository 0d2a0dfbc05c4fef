package models

// Question представляет вопрос пользователя к объявлению.
// Answer заполняется владельцем дома позже и может быть пустым.
type Question struct {
	ID      string `bson:"_id" json:"id"`
	HouseID string `bson:"house_id" json:"house_id"`
	UserID  string `bson:"user_id" json:"user_id"`
	Text    string `bson:"text" json:"text"`
	Answer  string `bson:"answer,omitempty" json:"answer,omitempty"`
}

// DummyQuestion используется для приёма текста вопроса из JSON-запроса.
type DummyQuestion struct {
	Text string `json:"text" validate:"required"`
}

// DummyAnswer используется для приёма ответа владельца из JSON-запроса.
type DummyAnswer struct {
	Answer string `json:"answer" validate:"required"`
}
