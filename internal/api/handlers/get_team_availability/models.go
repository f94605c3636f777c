package get_team_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	getTeamAvailability "github.com/m04kA/SMC-TeamScheduling/internal/usecase/get_team_availability"
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

// DayResponse статус клинера за день
type DayResponse struct {
	Status      string         `json:"status"`
	BusyMinutes int            `json:"busyMinutes"`
	Utilisation float64        `json:"utilisation"`
	Slots       []SlotResponse `json:"slots"`
}

// MemberResponse занятость клинера
type MemberResponse struct {
	MemberID           int64                  `json:"memberId"`
	DisplayName        string                 `json:"displayName"`
	CalendarSyncStatus string                 `json:"calendarSyncStatus"`
	LastSynced         *time.Time             `json:"lastSynced,omitempty"`
	PartialData        bool                   `json:"partialData"`
	Days               map[string]DayResponse `json:"days"`
}

// TeamAvailabilityResponse HTTP response model
type TeamAvailabilityResponse struct {
	TeamID      int64            `json:"teamId"`
	StartDate   string           `json:"startDate"`
	EndDate     string           `json:"endDate"`
	PartialData bool             `json:"partialData"`
	Members     []MemberResponse `json:"members"`
}

// ToUseCaseRequest формирует запрос use case, даты в формате YYYY-MM-DD
func ToUseCaseRequest(teamID int64, startDateStr, endDateStr string, loc *time.Location) (*getTeamAvailability.Request, error) {
	startDate, err := time.ParseInLocation(domain.DateFormat, startDateStr, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid startDate: %w", err)
	}
	endDate, err := time.ParseInLocation(domain.DateFormat, endDateStr, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid endDate: %w", err)
	}

	return &getTeamAvailability.Request{
		TeamID:    teamID,
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getTeamAvailability.Response) *TeamAvailabilityResponse {
	result := &TeamAvailabilityResponse{
		TeamID:      resp.TeamID,
		StartDate:   resp.StartDate.Format(domain.DateFormat),
		EndDate:     resp.EndDate.Format(domain.DateFormat),
		PartialData: resp.PartialData,
		Members:     make([]MemberResponse, 0, len(resp.Members)),
	}

	for _, m := range resp.Members {
		member := MemberResponse{
			MemberID:           m.Availability.MemberID,
			DisplayName:        m.Availability.DisplayName,
			CalendarSyncStatus: string(m.Availability.CalendarSyncStatus),
			LastSynced:         m.Availability.LastSynced,
			PartialData:        m.Availability.PartialData,
			Days:               make(map[string]DayResponse, len(m.Days)),
		}

		for key, summary := range m.Days {
			slots := m.Availability.Slots[key]
			day := DayResponse{
				Status:      string(summary.Status),
				BusyMinutes: summary.BusyMinutes,
				Utilisation: summary.Utilisation,
				Slots:       make([]SlotResponse, 0, len(slots)),
			}
			for _, s := range slots {
				day.Slots = append(day.Slots, SlotResponse{
					StartTime:   s.StartTime.String(),
					EndTime:     s.EndTime.String(),
					IsAvailable: s.IsAvailable,
					Source:      s.Source.String(),
					BookingID:   s.BookingID,
					Title:       s.Title,
				})
			}
			member.Days[key] = day
		}

		result.Members = append(result.Members, member)
	}

	return result
}
