package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/homefind/rental-backend/internal/apperr"
	"github.com/homefind/rental-backend/internal/models"
)

// QuestionStore хранилище вопросов к объявлениям.
type QuestionStore struct {
	col *mongo.Collection
}

// CreateQuestion сохраняет новый вопрос.
func (s *QuestionStore) CreateQuestion(ctx context.Context, question models.Question) error {
	const op = "mongodb.CreateQuestion"
	_, err := s.col.InsertOne(ctx, question)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.E(apperr.KindConflict, "question", question.ID, "question already exists")
	}
	if err != nil {
		return apperr.Wrap(op, err)
	}
	return nil
}

// GetQuestion возвращает вопрос по id.
func (s *QuestionStore) GetQuestion(ctx context.Context, id string) (*models.Question, error) {
	const op = "mongodb.GetQuestion"
	var question models.Question
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.E(apperr.KindNotFound, "question", id, "question does not exist")
	}
	if err != nil {
		return nil, apperr.Wrap(op, err)
	}
	return &question, nil
}

// SetAnswer записывает ответ владельца на вопрос.
func (s *QuestionStore) SetAnswer(ctx context.Context, id, answer string) error {
	const op = "mongodb.SetAnswer"
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"answer": answer}})
	if err != nil {
		return apperr.Wrap(op, err)
	}
	if res.MatchedCount == 0 {
		return apperr.E(apperr.KindNotFound, "question", id, "question does not exist")
	}
	return nil
}

// ListQuestionsByHouse возвращает вопросы к объявлению.
func (s *QuestionStore) ListQuestionsByHouse(ctx context.Context, houseID string) ([]*models.Question, error) {
	const op = "mongodb.ListQuestionsByHouse"
	cursor, err := s.col.Find(ctx, bson.M{"house_id": houseID}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, apperr.Wrap(op, err)
	}
	defer cursor.Close(ctx)

	var questions []*models.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, apperr.Wrap(op, err)
	}
	return questions, nil
}
