// Package remove реализует HTTP-обработчик удаления объявления.
// Вместе с объявлением удаляются все его аренды.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/homefind/rental-backend/internal/http/middlewarectx"
	"github.com/homefind/rental-backend/internal/http/response"
	"github.com/homefind/rental-backend/internal/lib/sl"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Delete(ctx context.Context, sessionUser, id string) error
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.house.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id := chi.URLParam(r, "houseID")

	if err := h.service.Delete(r.Context(), username, id); err != nil {
		log.Error("failed to delete house", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error(response.ErrorMessage(err)))
		return
	}

	log.Info("deleted house", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"deleted_id": id,
	}))
}
