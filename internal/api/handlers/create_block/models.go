package create_block

import (
	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	"github.com/m04kA/SMC-TeamScheduling/internal/service/blocks/models"
)

// CreateBlockRequest HTTP request model
type CreateBlockRequest struct {
	Date        string  `json:"date"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	IsAvailable bool    `json:"isAvailable"`
	Title       *string `json:"title,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateBlockRequest) ToServiceRequest(memberID int64, actor domain.Actor) *models.CreateBlockRequest {
	return &models.CreateBlockRequest{
		Actor:       actor,
		MemberID:    memberID,
		Date:        r.Date,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		IsAvailable: r.IsAvailable,
		Title:       r.Title,
	}
}
