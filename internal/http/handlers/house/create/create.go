// Package create реализует HTTP-обработчик создания объявления.
//
// Handler принимает JSON-запрос с данными дома, валидирует их, извлекает
// никнейм пользователя из контекста и вызывает бизнес-логику создания
// объявления. Владелец дома — пользователь сессии.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/homefind/rental-backend/internal/http/middlewarectx"
	"github.com/homefind/rental-backend/internal/http/response"
	"github.com/homefind/rental-backend/internal/lib/sl"
	"github.com/homefind/rental-backend/internal/models"
)

// Handler управляет HTTP-запросами на создание объявлений.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания объявления.
type Service interface {
	Create(ctx context.Context, sessionUser string, req models.DummyHouse) (*models.House, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.house.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyHouse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	house, err := h.service.Create(r.Context(), username, req)
	if err != nil {
		log.Error("failed to create house", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error(response.ErrorMessage(err)))
		return
	}

	log.Info("created house", slog.String("id", house.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(house))
}
