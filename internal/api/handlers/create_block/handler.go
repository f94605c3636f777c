package create_block

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
	msgInvalidMemberID    = "некорректный ID клинера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgMemberNotFound     = "клинер не найден"
	msgForbidden          = "доступ запрещен"
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

// Handle POST /api/v1/members/{memberId}/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	memberID, err := strconv.ParseInt(mux.Vars(r)["memberId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /members/{id}/blocks - Invalid member ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /members/{id}/blocks - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /members/{id}/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	block, err := h.service.Create(r.Context(), req.ToServiceRequest(memberID, actor))
	if err != nil {
		switch {
		case errors.Is(err, blocks.ErrInvalidInput):
			h.logger.Warn("POST /members/{id}/blocks - Invalid input: member_id=%d, error=%v", memberID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, blocks.ErrMemberNotFound):
			h.logger.Warn("POST /members/{id}/blocks - Member not found: member_id=%d", memberID)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, blocks.ErrAccessDenied):
			h.logger.Warn("POST /members/{id}/blocks - Access denied: member_id=%d, user_id=%d", memberID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /members/{id}/blocks - Failed to create block: member_id=%d, error=%v", memberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /members/{id}/blocks - Block created: block_id=%d, member_id=%d", block.ID, memberID)
	handlers.RespondJSON(w, http.StatusCreated, block)
}
