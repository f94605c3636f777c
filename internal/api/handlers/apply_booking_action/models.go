package apply_booking_action

import (
	"time"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	applyBookingAction "github.com/m04kA/SMC-TeamScheduling/internal/usecase/apply_booking_action"
)

// ApplyBookingActionRequest HTTP request model
type ApplyBookingActionRequest struct {
	Action        string `json:"action"`
	NewAssigneeID *int64 `json:"newAssigneeId,omitempty"`
}

// WarningResponse мягкое пересечение с календарём или ручной блокировкой
type WarningResponse struct {
	Source    string  `json:"source"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Title     *string `json:"title,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           int64             `json:"id"`
	Status       string            `json:"status"`
	BookingDate  string            `json:"bookingDate"`
	StartTime    string            `json:"startTime"`
	Hours        float64           `json:"hours"`
	Price        float64           `json:"price"`
	CleanerID    int64             `json:"cleanerId"`
	OwnerID      int64             `json:"ownerId"`
	PropertyID   int64             `json:"propertyId"`
	TeamID       *int64            `json:"teamId,omitempty"`
	ServiceName  string            `json:"serviceName"`
	PropertyName string            `json:"propertyName"`
	Version      int64             `json:"version"`
	UpdatedAt    time.Time         `json:"updatedAt"`
	Warnings     []WarningResponse `json:"warnings"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *ApplyBookingActionRequest) ToUseCaseRequest(bookingID int64, actor domain.Actor) *applyBookingAction.Request {
	return &applyBookingAction.Request{
		BookingID:     bookingID,
		Action:        domain.BookingAction(r.Action),
		Actor:         actor,
		NewAssigneeID: r.NewAssigneeID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *applyBookingAction.Response) *BookingResponse {
	result := &BookingResponse{
		ID:           resp.ID,
		Status:       resp.Status,
		BookingDate:  resp.BookingDate.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		Hours:        resp.Hours,
		Price:        resp.Price,
		CleanerID:    resp.CleanerID,
		OwnerID:      resp.OwnerID,
		PropertyID:   resp.PropertyID,
		TeamID:       resp.TeamID,
		ServiceName:  resp.ServiceName,
		PropertyName: resp.PropertyName,
		Version:      resp.Version,
		UpdatedAt:    resp.UpdatedAt,
		Warnings:     make([]WarningResponse, 0, len(resp.Warnings)),
	}

	for _, w := range resp.Warnings {
		result.Warnings = append(result.Warnings, WarningResponse{
			Source:    w.Source,
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
			Title:     w.Title,
		})
	}

	return result
}
