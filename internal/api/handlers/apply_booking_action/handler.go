package apply_booking_action

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TeamScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-TeamScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	applyBookingAction "github.com/m04kA/SMC-TeamScheduling/internal/usecase/apply_booking_action"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgMemberNotFound     = "исполнитель не найден"
	msgSlotConflict       = "у клинера уже есть бронирование в это время"
	msgAlreadyTaken       = "бронирование изменено другим пользователем, обновите данные"
	msgInvalidTransition  = "действие недопустимо для текущего статуса бронирования"
	msgForbidden          = "недостаточно прав для действия"
)

type Handler struct {
	useCase ApplyBookingActionUseCase
	logger  Logger
}

func NewHandler(useCase ApplyBookingActionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/actions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/actions - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/actions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ApplyBookingActionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/actions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, actor))
	if err != nil {
		switch {
		case errors.Is(err, applyBookingAction.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/actions - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, applyBookingAction.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/actions - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, applyBookingAction.ErrMemberNotFound):
			h.logger.Warn("POST /bookings/{id}/actions - Assignee not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/actions - Invalid transition: booking_id=%d, action=%s", bookingID, req.Action)
			handlers.RespondUnprocessable(w, handlers.CodeInvalidTransition, msgInvalidTransition)

		case errors.Is(err, domain.ErrUnauthorized):
			h.logger.Warn("POST /bookings/{id}/actions - Unauthorized: booking_id=%d, user_id=%d", bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrSlotConflict):
			h.logger.Warn("POST /bookings/{id}/actions - Slot conflict: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondConflict(w, handlers.CodeSlotConflict, msgSlotConflict)

		case errors.Is(err, domain.ErrAlreadyTaken):
			h.logger.Warn("POST /bookings/{id}/actions - Already taken: booking_id=%d", bookingID)
			handlers.RespondConflict(w, handlers.CodeAlreadyTaken, msgAlreadyTaken)

		default:
			h.logger.Error("POST /bookings/{id}/actions - Failed to apply action: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/actions - Action applied: booking_id=%d, action=%s, status=%s",
		bookingID, req.Action, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
