// Package question реализует вопросы пользователей к объявлениям
// и ответы владельцев.
package question

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/homefind/rental-backend/internal/apperr"
	"github.com/homefind/rental-backend/internal/models"
)

// QuestionRepository описывает контракт хранилища вопросов.
type QuestionRepository interface {
	CreateQuestion(ctx context.Context, question models.Question) error
	GetQuestion(ctx context.Context, id string) (*models.Question, error)
	SetAnswer(ctx context.Context, id, answer string) error
	ListQuestionsByHouse(ctx context.Context, houseID string) ([]*models.Question, error)
}

// HouseRepository описывает нужную сервису часть хранилища объявлений.
type HouseRepository interface {
	GetHouse(ctx context.Context, id string) (*models.House, error)
}

// Service реализует операции над вопросами к объявлениям.
type Service struct {
	questions QuestionRepository
	houses    HouseRepository
	log       *slog.Logger
}

// New создает новый Service.
func New(questions QuestionRepository, houses HouseRepository, log *slog.Logger) *Service {
	return &Service{
		questions: questions,
		houses:    houses,
		log:       log,
	}
}

// Ask создает вопрос к существующему объявлению от имени пользователя сессии.
func (s *Service) Ask(ctx context.Context, sessionUser, houseID string, req models.DummyQuestion) (*models.Question, error) {
	if _, err := s.houses.GetHouse(ctx, houseID); err != nil {
		return nil, err
	}
	question := models.Question{
		ID:      uuid.NewString(),
		HouseID: houseID,
		UserID:  sessionUser,
		Text:    req.Text,
	}
	if err := s.questions.CreateQuestion(ctx, question); err != nil {
		return nil, err
	}
	s.log.Info("created question",
		slog.String("id", question.ID),
		slog.String("house_id", houseID),
	)
	return &question, nil
}

// Answer записывает ответ владельца объявления на вопрос.
// Отвечать может только владелец дома, к которому задан вопрос.
func (s *Service) Answer(ctx context.Context, sessionUser, houseID, questionID string, req models.DummyAnswer) (*models.Question, error) {
	question, err := s.questions.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question.HouseID != houseID {
		return nil, apperr.E(apperr.KindBadRequest, "question", questionID, "question does not belong to house")
	}
	house, err := s.houses.GetHouse(ctx, houseID)
	if err != nil {
		return nil, err
	}
	if house.OwnerID != sessionUser {
		return nil, apperr.E(apperr.KindUnauthorized, "question", questionID, "only the house owner can answer")
	}
	if err := s.questions.SetAnswer(ctx, questionID, req.Answer); err != nil {
		return nil, err
	}
	question.Answer = req.Answer
	return question, nil
}

// List возвращает вопросы к объявлению.
func (s *Service) List(ctx context.Context, houseID string) ([]*models.Question, error) {
	if _, err := s.houses.GetHouse(ctx, houseID); err != nil {
		return nil, err
	}
	return s.questions.ListQuestionsByHouse(ctx, houseID)
}
