package sync_member_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TeamScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-TeamScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	syncMemberCalendar "github.com/m04kA/SMC-TeamScheduling/internal/usecase/sync_member_calendar"
)

const (
	msgInvalidMemberID = "некорректный ID клинера"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgMemberNotFound  = "клинер не найден"
	msgNotConnected    = "календарь клинера не подключён"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	useCase SyncMemberCalendarUseCase
	logger  Logger
}

func NewHandler(useCase SyncMemberCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/members/{memberId}/calendar/sync
// Ошибка календаря не считается ошибкой запроса: в ответе partialData=true и статус SYNC_FAILED
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	memberID, err := strconv.ParseInt(mux.Vars(r)["memberId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /members/{id}/calendar/sync - Invalid member ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /members/{id}/calendar/sync - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &syncMemberCalendar.Request{MemberID: memberID, Actor: actor})
	if err != nil {
		switch {
		case errors.Is(err, syncMemberCalendar.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, syncMemberCalendar.ErrMemberNotFound):
			h.logger.Warn("POST /members/{id}/calendar/sync - Member not found: member_id=%d", memberID)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, domain.ErrUnauthorized):
			h.logger.Warn("POST /members/{id}/calendar/sync - Access denied: member_id=%d, user_id=%d", memberID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, syncMemberCalendar.ErrNotConnected):
			h.logger.Warn("POST /members/{id}/calendar/sync - Calendar not connected: member_id=%d", memberID)
			handlers.RespondUnprocessable(w, handlers.CodeBadRequest, msgNotConnected)

		default:
			h.logger.Error("POST /members/{id}/calendar/sync - Failed to sync: member_id=%d, error=%v", memberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /members/{id}/calendar/sync - Sync finished: member_id=%d, status=%s",
		memberID, result.CalendarSyncStatus)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
