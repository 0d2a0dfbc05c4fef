// Package list реализует HTTP-обработчик постраничного списка объявлений.
// Смещение страницы передается параметром offset строки запроса.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

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
	List(ctx context.Context, offset int) ([]*models.House, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.house.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	offset := 0
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		var err error
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			log.Error("invalid offset format", slog.String("offset", offsetStr))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid offset"))
			return
		}
	}

	houses, err := h.service.List(r.Context(), offset)
	if err != nil {
		log.Error("failed to list houses", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error(response.ErrorMessage(err)))
		return
	}

	render.JSON(w, r, response.OKWithData(houses))
}
