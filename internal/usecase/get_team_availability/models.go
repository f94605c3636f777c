package get_team_availability

import (
	"time"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	"github.com/m04kA/SMC-TeamScheduling/internal/service/availability"
)

// Request модель запроса занятости команды
type Request struct {
	TeamID    int64
	StartDate time.Time // Первый день периода
	EndDate   time.Time // Последний день периода (включительно)
}

// MemberResult занятость клинера и статусы по дням
type MemberResult struct {
	Availability *domain.MemberAvailability
	Days         map[string]availability.DaySummary // DateKey -> статус дня
}

// Response модель ответа
type Response struct {
	TeamID      int64
	StartDate   time.Time
	EndDate     time.Time
	PartialData bool // хотя бы у одного клинера календарь взят из кэша
	Members     []MemberResult
}
