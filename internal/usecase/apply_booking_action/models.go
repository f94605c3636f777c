package apply_booking_action

import (
	"time"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	"github.com/m04kA/SMC-TeamScheduling/pkg/types"
)

// Request модель запроса на действие с бронированием
type Request struct {
	BookingID     int64                // ID бронирования
	Action        domain.BookingAction // accept, decline, assign, complete, cancel
	Actor         domain.Actor         // Кто выполняет действие
	NewAssigneeID *int64               // Новый исполнитель (только для assign)
}

// Warning мягкое пересечение, которое не блокирует переход
type Warning struct {
	Source    string
	StartTime types.TimeString
	EndTime   types.TimeString
	Title     *string
}

// Response модель ответа с обновлённым бронированием
type Response struct {
	ID          int64
	Status      string
	BookingDate time.Time
	StartTime   types.TimeString
	Hours       float64
	Price       float64

	CleanerID    int64
	OwnerID      int64
	PropertyID   int64
	TeamID       *int64
	ServiceName  string
	PropertyName string

	Version   int64
	UpdatedAt time.Time

	Warnings []Warning
}

func newResponse(booking *domain.Booking, warnings []domain.AvailabilitySlot) *Response {
	response := &Response{
		ID:           booking.ID,
		Status:       string(booking.Status),
		BookingDate:  booking.BookingDate,
		StartTime:    booking.StartTime,
		Hours:        booking.Hours(),
		Price:        booking.Price,
		CleanerID:    booking.CleanerID,
		OwnerID:      booking.OwnerID,
		PropertyID:   booking.PropertyID,
		TeamID:       booking.TeamID,
		ServiceName:  booking.ServiceName,
		PropertyName: booking.PropertyName,
		Version:      booking.Version,
		UpdatedAt:    booking.UpdatedAt,
		Warnings:     make([]Warning, 0, len(warnings)),
	}

	for _, slot := range warnings {
		response.Warnings = append(response.Warnings, Warning{
			Source:    slot.Source.String(),
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Title:     slot.Title,
		})
	}

	return response
}
