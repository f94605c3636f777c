package get_day_status

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TeamScheduling/internal/api/handlers"
	getDayStatus "github.com/m04kA/SMC-TeamScheduling/internal/usecase/get_day_status"
)

const (
	msgInvalidMemberID = "некорректный ID клинера"
	msgMissingDate     = "дата обязательна"
	msgInvalidQuery    = "некорректные параметры запроса, дата ожидается в формате YYYY-MM-DD"
	msgMemberNotFound  = "клинер не найден"
)

type Handler struct {
	useCase  GetDayStatusUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetDayStatusUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/members/{memberId}/day-status
// Query params: date (required), fromHour, toHour (optional, сетка по умолчанию 08-18)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	memberID, err := strconv.ParseInt(mux.Vars(r)["memberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /members/{id}/day-status - Invalid member ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	query := r.URL.Query()
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /members/{id}/day-status - Missing date: member_id=%d", memberID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(memberID, dateStr, query.Get("fromHour"), query.Get("toHour"), h.location)
	if err != nil {
		h.logger.Warn("GET /members/{id}/day-status - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getDayStatus.ErrInvalidInput):
			h.logger.Warn("GET /members/{id}/day-status - Invalid input: member_id=%d, error=%v", memberID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getDayStatus.ErrMemberNotFound):
			h.logger.Warn("GET /members/{id}/day-status - Member not found: member_id=%d", memberID)
			handlers.RespondNotFound(w, msgMemberNotFound)

		default:
			h.logger.Error("GET /members/{id}/day-status - Failed to get day status: member_id=%d, error=%v", memberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /members/{id}/day-status - Day status retrieved: member_id=%d, date=%s, status=%s",
		memberID, dateStr, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
