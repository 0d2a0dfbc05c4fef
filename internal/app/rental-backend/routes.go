// Package rentalbackend предоставляет маршруты для основного приложения.
package rentalbackend

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	housecreate "github.com/homefind/rental-backend/internal/http/handlers/house/create"
	houselist "github.com/homefind/rental-backend/internal/http/handlers/house/list"
	houseread "github.com/homefind/rental-backend/internal/http/handlers/house/read"
	houseremove "github.com/homefind/rental-backend/internal/http/handlers/house/remove"
	houseupdate "github.com/homefind/rental-backend/internal/http/handlers/house/update"
	mediadownload "github.com/homefind/rental-backend/internal/http/handlers/media/download"
	mediaupload "github.com/homefind/rental-backend/internal/http/handlers/media/upload"
	questionanswer "github.com/homefind/rental-backend/internal/http/handlers/question/answer"
	questioncreate "github.com/homefind/rental-backend/internal/http/handlers/question/create"
	questionlist "github.com/homefind/rental-backend/internal/http/handlers/question/list"
	rentalcreate "github.com/homefind/rental-backend/internal/http/handlers/rental/create"
	rentallist "github.com/homefind/rental-backend/internal/http/handlers/rental/list"
	rentalread "github.com/homefind/rental-backend/internal/http/handlers/rental/read"
	rentalremove "github.com/homefind/rental-backend/internal/http/handlers/rental/remove"
	rentalupdate "github.com/homefind/rental-backend/internal/http/handlers/rental/update"
	userlogin "github.com/homefind/rental-backend/internal/http/handlers/user/login"
	userread "github.com/homefind/rental-backend/internal/http/handlers/user/read"
	userregister "github.com/homefind/rental-backend/internal/http/handlers/user/register"
	userremove "github.com/homefind/rental-backend/internal/http/handlers/user/remove"
	"github.com/homefind/rental-backend/internal/http/middlewarectx"
	"github.com/homefind/rental-backend/internal/lib/jwt"
	"github.com/homefind/rental-backend/internal/media"
	houseservice "github.com/homefind/rental-backend/internal/services/house"
	questionservice "github.com/homefind/rental-backend/internal/services/question"
	rentalservice "github.com/homefind/rental-backend/internal/services/rental"
	userservice "github.com/homefind/rental-backend/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker,
	userSvc *userservice.Service, houseSvc *houseservice.Service,
	rentalSvc *rentalservice.Service, questionSvc *questionservice.Service,
	mediaStore *media.Store) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	limiter := rate.NewLimiter(10, 20)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", userregister.New(logger, userSvc).ServeHTTP)
		r.Post("/login", userlogin.New(logger, userSvc).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(limiter, logger))

			r.Get("/users/{id}", userread.New(logger, userSvc).ServeHTTP)
			r.Delete("/users/{id}", userremove.New(logger, userSvc).ServeHTTP)

			r.Post("/houses", housecreate.New(logger, houseSvc).ServeHTTP)
			r.Get("/houses", houselist.New(logger, houseSvc).ServeHTTP)
			r.Get("/houses/{houseID}", houseread.New(logger, houseSvc).ServeHTTP)
			r.Put("/houses/{houseID}", houseupdate.New(logger, houseSvc).ServeHTTP)
			r.Delete("/houses/{houseID}", houseremove.New(logger, houseSvc).ServeHTTP)

			r.Post("/houses/{houseID}/rentals", rentalcreate.New(logger, rentalSvc).ServeHTTP)
			r.Get("/houses/{houseID}/rentals", rentallist.New(logger, rentalSvc).ServeHTTP)
			r.Get("/houses/{houseID}/rentals/{id}", rentalread.New(logger, rentalSvc).ServeHTTP)
			r.Put("/houses/{houseID}/rentals/{id}", rentalupdate.New(logger, rentalSvc).ServeHTTP)
			r.Delete("/houses/{houseID}/rentals/{id}", rentalremove.New(logger, rentalSvc).ServeHTTP)

			r.Post("/houses/{houseID}/questions", questioncreate.New(logger, questionSvc).ServeHTTP)
			r.Get("/houses/{houseID}/questions", questionlist.New(logger, questionSvc).ServeHTTP)
			r.Put("/houses/{houseID}/questions/{id}", questionanswer.New(logger, questionSvc).ServeHTTP)

			r.Post("/media", mediaupload.New(logger, mediaStore).ServeHTTP)
			r.Get("/media/{id}", mediadownload.New(logger, mediaStore).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
}
