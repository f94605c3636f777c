package get_team_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TeamScheduling/internal/api/handlers"
	getTeamAvailability "github.com/m04kA/SMC-TeamScheduling/internal/usecase/get_team_availability"
)

const (
	msgInvalidTeamID = "некорректный ID команды"
	msgMissingDates  = "startDate и endDate обязательны"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgTeamNotFound  = "команда не найдена"
)

type Handler struct {
	useCase  GetTeamAvailabilityUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetTeamAvailabilityUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/teams/{teamId}/availability
// Query params: startDate, endDate (required, YYYY-MM-DD, включительно)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	teamID, err := strconv.ParseInt(mux.Vars(r)["teamId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /teams/{id}/availability - Invalid team ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTeamID)
		return
	}

	query := r.URL.Query()
	startDateStr, endDateStr := query.Get("startDate"), query.Get("endDate")
	if startDateStr == "" || endDateStr == "" {
		h.logger.Warn("GET /teams/{id}/availability - Missing dates: team_id=%d", teamID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	useCaseReq, err := ToUseCaseRequest(teamID, startDateStr, endDateStr, h.location)
	if err != nil {
		h.logger.Warn("GET /teams/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getTeamAvailability.ErrInvalidInput):
			h.logger.Warn("GET /teams/{id}/availability - Invalid input: team_id=%d, error=%v", teamID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getTeamAvailability.ErrTeamNotFound):
			h.logger.Warn("GET /teams/{id}/availability - Team not found: team_id=%d", teamID)
			handlers.RespondNotFound(w, msgTeamNotFound)

		default:
			h.logger.Error("GET /teams/{id}/availability - Failed to get availability: team_id=%d, error=%v", teamID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /teams/{id}/availability - Availability retrieved: team_id=%d, members=%d, partial=%t",
		teamID, len(result.Members), result.PartialData)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
