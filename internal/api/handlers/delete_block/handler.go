package delete_block

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TeamScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-TeamScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-TeamScheduling/internal/service/blocks"
)

const (
	msgInvalidMemberID = "некорректный ID клинера"
	msgInvalidBlockID  = "некорректный ID блокировки"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgNotFound        = "блокировка не найдена"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service BlockService
	logger  Logger
}

func NewHandler(service BlockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/members/{memberId}/blocks/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	memberID, err := strconv.ParseInt(vars["memberId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /members/{id}/blocks/{id} - Invalid member ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	blockID, err := strconv.ParseInt(vars["blockId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /members/{id}/blocks/{id} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /members/{id}/blocks/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), memberID, blockID, actor); err != nil {
		switch {
		case errors.Is(err, blocks.ErrBlockNotFound), errors.Is(err, blocks.ErrMemberNotFound):
			h.logger.Warn("DELETE /members/{id}/blocks/{id} - Block not found: block_id=%d", blockID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, blocks.ErrAccessDenied):
			h.logger.Warn("DELETE /members/{id}/blocks/{id} - Access denied: block_id=%d, user_id=%d", blockID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /members/{id}/blocks/{id} - Failed to delete block: block_id=%d, error=%v", blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /members/{id}/blocks/{id} - Block deleted: block_id=%d, user_id=%d", blockID, actor.UserID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
