package get_availability

import (
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	computeAvailability "github.com/m04kA/SMC-SchedulingService/internal/usecase/compute_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	EmployeeID      int64    `json:"employeeId"`
	Date            string   `json:"date"`
	DurationMinutes int      `json:"durationMinutes"`
	Slots           []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *computeAvailability.Response) *AvailabilityResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailabilityResponse{
		EmployeeID:      resp.EmployeeID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(employeeID int64, dateStr, durationStr, serviceIDsStr string) (*computeAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &computeAvailability.Request{
		EmployeeID: employeeID,
		Date:       date,
	}

	if durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil {
			return nil, err
		}
		req.DurationMinutes = duration
	}

	if serviceIDsStr != "" {
		ids, err := parseIDList(serviceIDsStr)
		if err != nil {
			return nil, err
		}
		req.ServiceIDs = ids
	}

	return req, nil
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
