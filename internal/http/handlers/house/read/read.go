// Package read реализует HTTP-обработчик чтения объявления.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/homefind/rental-backend/internal/http/response"
	"github.com/homefind/rental-backend/internal/lib/sl"
	"github.com/homefind/rental-backend/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Get(ctx context.Context, id string) (*models.House, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.house.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "houseID")

	house, err := h.service.Get(r.Context(), id)
	if err != nil {
		log.Error("failed to get house", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error(response.ErrorMessage(err)))
		return
	}

	render.JSON(w, r, response.OKWithData(house))
}
