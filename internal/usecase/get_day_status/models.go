package get_day_status

import (
	"time"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	"github.com/m04kA/SMC-TeamScheduling/internal/service/availability"
)

// Request модель запроса статуса дня клинера
type Request struct {
	MemberID int64
	Date     time.Time
	FromHour *int // Начало сетки, по умолчанию начало рабочего дня
	ToHour   *int // Конец сетки (не включая), по умолчанию конец рабочего дня
}

// Response модель ответа
type Response struct {
	MemberID           int64
	DisplayName        string
	Date               time.Time
	Status             domain.DayStatus
	BusyMinutes        int
	Utilisation        float64
	CalendarSyncStatus domain.CalendarSyncStatus
	LastSynced         *time.Time
	PartialData        bool
	Slots              []domain.AvailabilitySlot
	Grid               []availability.GridCell
}
