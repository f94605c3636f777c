package models

import (
	"time"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
)

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64   `json:"id"`
	Status          string  `json:"status"`
	BookingDate     string  `json:"bookingDate"` // "2025-06-10"
	StartTime       string  `json:"startTime"`   // "10:00"
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Hours           float64 `json:"hours"`
	Price           float64 `json:"price"`

	CleanerID  int64  `json:"cleanerId"`
	OwnerID    int64  `json:"ownerId"`
	PropertyID int64  `json:"propertyId"`
	TeamID     *int64 `json:"teamId,omitempty"`

	ServiceName  string `json:"serviceName"`
	PropertyName string `json:"propertyName"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		Status:          string(b.Status),
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		Hours:           b.Hours(),
		Price:           b.Price,
		CleanerID:       b.CleanerID,
		OwnerID:         b.OwnerID,
		PropertyID:      b.PropertyID,
		TeamID:          b.TeamID,
		ServiceName:     b.ServiceName,
		PropertyName:    b.PropertyName,
		Version:         b.Version,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	// Конец интервала может выйти за пределы суток у некорректных данных, тогда поле пустое
	if end, err := b.EndTime(); err == nil {
		resp.EndTime = end.String()
	}

	return resp
}
