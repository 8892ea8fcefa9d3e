package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/linkfolio/core/internal/config"
	jwtpkg "github.com/linkfolio/core/internal/pkg/jwt"
	"go.uber.org/zap"
)

func applyRuntimeSettings(cfg *config.AppConfig, logger *zap.Logger) error {
	if secret := strings.TrimSpace(cfg.JWTSecret); secret != "" {
		jwtpkg.SetSecret(secret)
	} else {
		logger.Warn("jwt_secret is empty, using built-in default secret")
	}
	if strings.TrimSpace(cfg.SessionSecret) == "" {
		logger.Warn("session_secret is empty, using built-in default cookie secret")
	}

	tz := strings.TrimSpace(cfg.Timezone)
	if tz == "" {
		return nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	time.Local = loc
	return nil
}

func loginFailureDelay(cfg *config.AppConfig) time.Duration {
	if cfg.IsProduction() {
		return time.Second
	}
	return 0
}
