package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/station-locator/internal/pkg/errors"
	"github.com/station-locator/internal/pkg/utils"
	"github.com/station-locator/internal/usecase/dto"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker - внешняя зависимость, которую можно пингануть
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler - index и проверка зависимостей
type HealthHandler struct {
	checks map[string]HealthChecker
	logger *zap.Logger
}

// NewHealthHandler - создание нового HealthHandler
func NewHealthHandler(checks map[string]HealthChecker, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		checks: checks,
		logger: logger,
	}
}

// Index godoc
// @Summary Index
// @Tags Health
// @Produce json
// @Success 200 {object} utils.StatusResponse
// @Router / [get]
func (h *HealthHandler) Index(c *fiber.Ctx) error {
	return utils.SendSuccess(c, utils.StatusResponse{Status: dto.StatusOK})
}

// Health godoc
// @Summary Проверка хранилища и кеша
// @Tags Health
// @Produce json
// @Success 200 {object} utils.StatusResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	failed := make(map[string]interface{})
	for name, check := range h.checks {
		if err := check.Health(ctx); err != nil {
			h.logger.Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
			failed[name] = err.Error()
		}
	}

	if len(failed) > 0 {
		return utils.SendError(c, errors.ErrServiceUnavailable.WithDetails(failed))
	}

	return utils.SendSuccess(c, utils.StatusResponse{Status: dto.StatusOK})
}
