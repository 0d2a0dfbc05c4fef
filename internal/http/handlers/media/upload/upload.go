// Package upload реализует HTTP-обработчик загрузки медиафайла.
//
// Handler принимает тело запроса как содержимое файла, сохраняет его
// в блоб-хранилище и возвращает идентификатор, который затем
// указывается в photo_id пользователя или объявления.
package upload

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/homefind/rental-backend/internal/http/response"
	"github.com/homefind/rental-backend/internal/lib/sl"
)

// Максимальный размер загружаемого файла.
const maxUploadBytes = 10 << 20

// Handler управляет HTTP-запросами на загрузку медиафайлов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс блоб-хранилища для загрузки.
type Service interface {
	Upload(ctx context.Context, data []byte) (string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.media.upload"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		log.Error("failed to read request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if len(data) == 0 {
		log.Error("empty request body")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("empty request body"))
		return
	}

	id, err := h.service.Upload(r.Context(), data)
	if err != nil {
		log.Error("failed to upload media", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error(response.ErrorMessage(err)))
		return
	}

	log.Info("uploaded media", slog.String("id", id), slog.Int("size", len(data)))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}
