package get_team_coverage

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TeamScheduling/internal/api/handlers"
	getTeamCoverage "github.com/m04kA/SMC-TeamScheduling/internal/usecase/get_team_coverage"
)

const (
	msgInvalidTeamID = "некорректный ID команды"
	msgMissingDate   = "дата обязательна"
	msgInvalidQuery  = "некорректные параметры запроса, дата ожидается в формате YYYY-MM-DD"
	msgTeamNotFound  = "команда не найдена"
)

type Handler struct {
	useCase  GetTeamCoverageUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetTeamCoverageUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/teams/{teamId}/coverage
// Query params: date (required), hour (optional, 0-23)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	teamID, err := strconv.ParseInt(mux.Vars(r)["teamId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /teams/{id}/coverage - Invalid team ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTeamID)
		return
	}

	query := r.URL.Query()
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /teams/{id}/coverage - Missing date: team_id=%d", teamID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(teamID, dateStr, query.Get("hour"), h.location)
	if err != nil {
		h.logger.Warn("GET /teams/{id}/coverage - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getTeamCoverage.ErrInvalidInput):
			h.logger.Warn("GET /teams/{id}/coverage - Invalid input: team_id=%d, error=%v", teamID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getTeamCoverage.ErrTeamNotFound):
			h.logger.Warn("GET /teams/{id}/coverage - Team not found: team_id=%d", teamID)
			handlers.RespondNotFound(w, msgTeamNotFound)

		default:
			h.logger.Error("GET /teams/{id}/coverage - Failed to get coverage: team_id=%d, error=%v", teamID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /teams/{id}/coverage - Coverage retrieved: team_id=%d, %d/%d available",
		teamID, result.Available, result.Total)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
