package app

import (
	"github.com/yungbote/catalog-backend/internal/middleware"
	"github.com/yungbote/catalog-backend/internal/platform/logger"
)

type Middleware struct {
	Auth           *middleware.AuthMiddleware
	LoginRateLimit *middleware.RateLimitMiddleware
}

func wireMiddleware(log *logger.Logger, cfg Config, serviceset Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth:           middleware.NewAuthMiddleware(log, serviceset.Auth),
		LoginRateLimit: middleware.NewRateLimitMiddleware(log, cfg.LoginRateLimitRPS, cfg.LoginRateLimitBurst),
	}
}
