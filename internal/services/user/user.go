// Package user содержит логику регистрации, входа и удаления пользователей.
package user

import (
	"context"
	"log/slog"

	"github.com/homefind/rental-backend/internal/apperr"
	"github.com/homefind/rental-backend/internal/lib/jwt"
	"github.com/homefind/rental-backend/internal/lib/password"
	"github.com/homefind/rental-backend/internal/models"
)

// UserRepository описывает контракт хранилища пользователей.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// HouseReassigner переводит объявления удаляемого владельца на сентинель.
type HouseReassigner interface {
	ReassignOwner(ctx context.Context, ownerID, newOwnerID string) error
}

// MediaChecker проверяет существование медиафайла по ссылке.
type MediaChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Service отвечает за регистрацию, авторизацию и удаление пользователей.
type Service struct {
	users    UserRepository
	houses   HouseReassigner
	media    MediaChecker
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// New создает новый Service.
func New(users UserRepository, houses HouseReassigner, media MediaChecker,
	jwtMaker jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		houses:   houses,
		media:    media,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register создает нового пользователя с хэшированием пароля.
// Никнейм служит идентификатором, занятый никнейм — Conflict.
func (s *Service) Register(ctx context.Context, req models.DummyRegister) (*models.User, error) {
	if req.PhotoID != "" {
		exists, err := s.media.Exists(ctx, req.PhotoID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperr.E(apperr.KindBadRequest, "media", req.PhotoID, "referenced photo does not exist")
		}
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		ID:           req.ID,
		Name:         req.Name,
		PasswordHash: hashed,
		PhotoID:      req.PhotoID,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info("registered new user", slog.String("id", user.ID))
	return &user, nil
}

// Login проверяет пароль пользователя и генерирует JWT сессии.
func (s *Service) Login(ctx context.Context, req models.DummyLogin) (string, error) {
	user, err := s.users.GetUser(ctx, req.ID)
	if err != nil {
		return "", err
	}
	if err := password.CompareHash(user.PasswordHash, req.Password); err != nil {
		return "", apperr.E(apperr.KindUnauthorized, "user", req.ID, "invalid credentials")
	}
	return s.jwtMaker.GenerateToken(user.ID)
}

// Get возвращает пользователя по никнейму.
func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetUser(ctx, id)
}

// Delete удаляет пользователя. Удалить можно только себя; объявления
// удалённого владельца переводятся на сентинель, чтобы их нельзя было
// арендовать.
func (s *Service) Delete(ctx context.Context, sessionUser, id string) error {
	if sessionUser != id {
		return apperr.E(apperr.KindUnauthorized, "user", id, "session does not belong to user")
	}
	if _, err := s.users.GetUser(ctx, id); err != nil {
		return err
	}
	if err := s.houses.ReassignOwner(ctx, id, models.DeletedUserID); err != nil {
		return err
	}
	if err := s.users.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.log.Info("deleted user", slog.String("id", id))
	return nil
}
