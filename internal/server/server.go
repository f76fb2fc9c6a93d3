package server

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"gitlab-gateway/internal/api/handler"
	"gitlab-gateway/internal/logger"
)

type Config struct {
	Host            string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            int           `env:"HTTP_PORT" env-default:"8080"`
	Timeout         time.Duration `env:"HTTP_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

func NewRouter(permissions handler.PermissionSetter, items handler.ItemLister, log *zap.Logger, cfgLogger *logger.Config, srvTimeout time.Duration) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logger.MiddlewareLogger(log, cfgLogger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Get("/", handler.Index(log))
	router.Get("/health", handler.Health(log))
	router.Post("/permission", handler.SetPermission(permissions, srvTimeout, log))
	router.Get("/items", handler.ListItems(items, srvTimeout, log))

	return router
}
