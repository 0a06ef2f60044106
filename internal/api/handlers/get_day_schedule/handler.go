package get_day_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentsService "github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

const (
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingEmployeeIDs = "список сотрудников обязателен"
	msgInvalidEmployeeIDs = "некорректный список сотрудников"
	msgEmployeeNotFound   = "сотрудник не найден"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/day
// Query params: date (required, YYYY-MM-DD), employeeIds (required, "1,2,3")
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /schedule/day - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /schedule/day - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Извлекаем employeeIds из query параметров
	employeeIDsStr := r.URL.Query().Get("employeeIds")
	if employeeIDsStr == "" {
		h.logger.Warn("GET /schedule/day - Missing employee IDs")
		handlers.RespondBadRequest(w, msgMissingEmployeeIDs)
		return
	}

	employeeIDs, err := parseIDList(employeeIDsStr)
	if err != nil {
		h.logger.Warn("GET /schedule/day - Invalid employee IDs: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeIDs)
		return
	}

	// Вызываем сервис
	result, err := h.service.GetDaySchedule(r.Context(), &models.GetDayScheduleRequest{
		Date:        date,
		EmployeeIDs: employeeIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrEmployeeNotFound):
			h.logger.Warn("GET /schedule/day - Employee not found: date=%s, employees=%v", dateStr, employeeIDs)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, appointmentsService.ErrInvalidInput):
			h.logger.Warn("GET /schedule/day - Invalid input: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgInvalidEmployeeIDs)

		default:
			h.logger.Error("GET /schedule/day - Failed to build schedule: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedule/day - Schedule built successfully: date=%s, columns=%d", dateStr, len(result.Columns))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseIDList парсит список ID из строки вида "1,2,3"
func parseIDList(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
