package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	computeAvailability "github.com/m04kA/SMC-SchedulingService/internal/usecase/compute_availability"
)

const (
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDuration   = "требуется durationMinutes или serviceIds"
	msgInvalidParams     = "некорректные параметры запроса"
	msgInvalidDuration   = "некорректная длительность"
	msgEmployeeNotFound  = "сотрудник не найден"
	msgServiceNotFound   = "услуга не найдена"
)

type Handler struct {
	useCase ComputeAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase ComputeAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees/{employeeId}/availability
// Query params: date (required, YYYY-MM-DD), durationMinutes или serviceIds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем employeeId из URL
	employeeIDStr := vars["employeeId"]
	employeeID, err := strconv.ParseInt(employeeIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /employees/{id}/availability - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /employees/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	durationStr := r.URL.Query().Get("durationMinutes")
	serviceIDsStr := r.URL.Query().Get("serviceIds")
	if durationStr == "" && serviceIDsStr == "" {
		h.logger.Warn("GET /employees/{id}/availability - Missing duration and services")
		handlers.RespondBadRequest(w, msgMissingDuration)
		return
	}

	// Формируем запрос к use case
	useCaseReq, err := ToUseCaseRequest(employeeID, dateStr, durationStr, serviceIDsStr)
	if err != nil {
		h.logger.Warn("GET /employees/{id}/availability - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, computeAvailability.ErrEmployeeNotFound):
			h.logger.Warn("GET /employees/{id}/availability - Employee not found: employee_id=%d", employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, computeAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /employees/{id}/availability - Service not found: employee_id=%d", employeeID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, computeAvailability.ErrInvalidDuration):
			h.logger.Warn("GET /employees/{id}/availability - Invalid duration: employee_id=%d", employeeID)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, computeAvailability.ErrInvalidInput):
			h.logger.Warn("GET /employees/{id}/availability - Invalid input: employee_id=%d", employeeID)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /employees/{id}/availability - Failed to compute slots: employee_id=%d, date=%s, error=%v",
				employeeID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /employees/{id}/availability - Slots computed successfully: employee_id=%d, date=%s, slots_count=%d",
		employeeID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
