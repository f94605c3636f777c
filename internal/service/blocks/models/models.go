package models

import (
	"time"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	"github.com/m04kA/SMC-TeamScheduling/pkg/types"
)

// Request модели

// CreateBlockRequest запрос на создание ручной блокировки
type CreateBlockRequest struct {
	Actor       domain.Actor `json:"-"`
	MemberID    int64        `json:"memberId"`
	Date        string       `json:"date"`      // "2025-06-10"
	StartTime   string       `json:"startTime"` // "09:00"
	EndTime     string       `json:"endTime"`   // "24:00" допустимо как конец суток
	IsAvailable bool         `json:"isAvailable"`
	Title       *string      `json:"title,omitempty"`
}

// ToDomainBlock конвертирует request в domain модель
func (r *CreateBlockRequest) ToDomainBlock(date time.Time, start, end types.TimeString) *domain.ManualBlock {
	return &domain.ManualBlock{
		MemberID:    r.MemberID,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: r.IsAvailable,
		Title:       r.Title,
	}
}

// Response модели

// BlockResponse ответ с данными блокировки
type BlockResponse struct {
	ID          int64     `json:"id"`
	MemberID    int64     `json:"memberId"`
	Date        string    `json:"date"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	IsAvailable bool      `json:"isAvailable"`
	Title       *string   `json:"title,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FromDomainBlock конвертирует domain модель в DTO
func FromDomainBlock(b *domain.ManualBlock) *BlockResponse {
	if b == nil {
		return nil
	}

	return &BlockResponse{
		ID:          b.ID,
		MemberID:    b.MemberID,
		Date:        b.Date.Format(domain.DateFormat),
		StartTime:   b.StartTime.String(),
		EndTime:     b.EndTime.String(),
		IsAvailable: b.IsAvailable,
		Title:       b.Title,
		CreatedAt:   b.CreatedAt,
	}
}
