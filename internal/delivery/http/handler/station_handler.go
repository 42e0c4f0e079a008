package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/station-locator/internal/pkg/utils"
	"github.com/station-locator/internal/usecase"
	"github.com/station-locator/internal/usecase/dto"
)

// StationHandler - обработчик поиска заправок
type StationHandler struct {
	stationUC *usecase.StationUseCase
	logger    *zap.Logger
}

// NewStationHandler - создание нового StationHandler
func NewStationHandler(stationUC *usecase.StationUseCase, logger *zap.Logger) *StationHandler {
	return &StationHandler{
		stationUC: stationUC,
		logger:    logger,
	}
}

// ListStations godoc
// @Summary Поиск заправок
// @Description Возвращает заправки категории petrol. При заданной точке (near или at) выдача ограничена радиусом maxDistance и у каждой станции есть distance в метрах. Фильтр prices оставляет в ответе только перечисленные виды топлива.
// @Tags Stations
// @Produce json
// @Param prices query string false "Виды топлива через запятую (diesel,super_95)"
// @Param at query string false "Точка отсчёта lng,lat"
// @Param near query string false "Адрес точки отсчёта, приоритетнее at"
// @Param limit query int false "Максимальное количество станций" default(10)
// @Param maxDistance query int false "Радиус поиска в метрах" default(10000)
// @Success 200 {object} dto.StationsResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /stations [get]
func (h *StationHandler) ListStations(c *fiber.Ctx) error {
	req := dto.StationsRequest{
		Prices:      c.Query("prices"),
		At:          c.Query("at"),
		Near:        c.Query("near"),
		Limit:       c.Query("limit"),
		MaxDistance: c.Query("maxDistance"),
	}

	result, err := h.stationUC.ListStations(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result)
}
