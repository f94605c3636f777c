package get_day_status

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	getDayStatus "github.com/m04kA/SMC-TeamScheduling/internal/usecase/get_day_status"
)

// SlotResponse интервал занятости
type SlotResponse struct {
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	IsAvailable bool    `json:"isAvailable"`
	Source      string  `json:"source"`
	BookingID   *int64  `json:"bookingId,omitempty"`
	Title       *string `json:"title,omitempty"`
}

// GridCellResponse ячейка почасовой сетки
type GridCellResponse struct {
	Hour      int     `json:"hour"`
	Span      int     `json:"span"`
	Status    string  `json:"status"`
	Source    *string `json:"source,omitempty"`
	BookingID *int64  `json:"bookingId,omitempty"`
	Title     *string `json:"title,omitempty"`
}

// DayStatusResponse HTTP response model
type DayStatusResponse struct {
	MemberID           int64              `json:"memberId"`
	DisplayName        string             `json:"displayName"`
	Date               string             `json:"date"`
	Status             string             `json:"status"`
	BusyMinutes        int                `json:"busyMinutes"`
	Utilisation        float64            `json:"utilisation"`
	CalendarSyncStatus string             `json:"calendarSyncStatus"`
	LastSynced         *time.Time         `json:"lastSynced,omitempty"`
	PartialData        bool               `json:"partialData"`
	Slots              []SlotResponse     `json:"slots"`
	Grid               []GridCellResponse `json:"grid"`
}

// ToUseCaseRequest формирует запрос use case
// fromHour и toHour опциональны, пустая строка означает значение по умолчанию
func ToUseCaseRequest(memberID int64, dateStr, fromHourStr, toHourStr string, loc *time.Location) (*getDayStatus.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	req := &getDayStatus.Request{MemberID: memberID, Date: date}

	if fromHourStr != "" {
		fromHour, err := strconv.Atoi(fromHourStr)
		if err != nil {
			return nil, fmt.Errorf("invalid fromHour: %w", err)
		}
		req.FromHour = &fromHour
	}
	if toHourStr != "" {
		toHour, err := strconv.Atoi(toHourStr)
		if err != nil {
			return nil, fmt.Errorf("invalid toHour: %w", err)
		}
		req.ToHour = &toHour
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDayStatus.Response) *DayStatusResponse {
	result := &DayStatusResponse{
		MemberID:           resp.MemberID,
		DisplayName:        resp.DisplayName,
		Date:               resp.Date.Format(domain.DateFormat),
		Status:             string(resp.Status),
		BusyMinutes:        resp.BusyMinutes,
		Utilisation:        resp.Utilisation,
		CalendarSyncStatus: string(resp.CalendarSyncStatus),
		LastSynced:         resp.LastSynced,
		PartialData:        resp.PartialData,
		Slots:              make([]SlotResponse, 0, len(resp.Slots)),
		Grid:               make([]GridCellResponse, 0, len(resp.Grid)),
	}

	for _, s := range resp.Slots {
		result.Slots = append(result.Slots, SlotResponse{
			StartTime:   s.StartTime.String(),
			EndTime:     s.EndTime.String(),
			IsAvailable: s.IsAvailable,
			Source:      s.Source.String(),
			BookingID:   s.BookingID,
			Title:       s.Title,
		})
	}

	for _, c := range resp.Grid {
		cell := GridCellResponse{
			Hour:      c.Hour,
			Span:      c.Span,
			Status:    string(c.Status),
			BookingID: c.BookingID,
			Title:     c.Title,
		}
		if c.Source != nil {
			source := c.Source.String()
			cell.Source = &source
		}
		result.Grid = append(result.Grid, cell)
	}

	return result
}
