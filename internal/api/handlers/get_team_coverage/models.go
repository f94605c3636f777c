package get_team_coverage

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	getTeamCoverage "github.com/m04kA/SMC-TeamScheduling/internal/usecase/get_team_coverage"
)

// CoverageResponse HTTP response model
type CoverageResponse struct {
	TeamID      int64  `json:"teamId"`
	Date        string `json:"date"`
	Hour        *int   `json:"hour,omitempty"`
	Available   int    `json:"available"`
	Total       int    `json:"total"`
	PartialData bool   `json:"partialData"`
}

// ToUseCaseRequest формирует запрос use case, пустой hourStr означает покрытие за день
func ToUseCaseRequest(teamID int64, dateStr, hourStr string, loc *time.Location) (*getTeamCoverage.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	req := &getTeamCoverage.Request{TeamID: teamID, Date: date}
	if hourStr != "" {
		hour, err := strconv.Atoi(hourStr)
		if err != nil {
			return nil, fmt.Errorf("invalid hour: %w", err)
		}
		req.Hour = &hour
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getTeamCoverage.Response) *CoverageResponse {
	return &CoverageResponse{
		TeamID:      resp.TeamID,
		Date:        resp.Date.Format(domain.DateFormat),
		Hour:        resp.Hour,
		Available:   resp.Available,
		Total:       resp.Total,
		PartialData: resp.PartialData,
	}
}
