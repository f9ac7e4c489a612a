package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/anush47/salaryapp-backend-go/internal/handler/http/middleware"
	"github.com/anush47/salaryapp-backend-go/internal/pkg/jwt"
)

func NewRouter(jwtService jwt.Service, salaryHandler SalaryHandler, paymentHandler PaymentHandler, generateHandler GenerateHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "salaryapp"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/salaries", func(r chi.Router) {
				r.Post("/generate", salaryHandler.Generate)
				r.Get("/", salaryHandler.List)
				r.Get("/{id}", salaryHandler.Get)
				r.Put("/{id}", salaryHandler.Update)
				r.Delete("/{id}", salaryHandler.Delete)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Post("/generate", paymentHandler.Generate)
				r.Get("/", paymentHandler.List)
				r.Get("/{id}", paymentHandler.Get)
				r.Put("/{id}", paymentHandler.Update)
				r.Delete("/{id}", paymentHandler.Delete)
			})

			r.Post("/generate", generateHandler.Run)
		})
	})

	return r
}
