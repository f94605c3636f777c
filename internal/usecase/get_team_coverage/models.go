package get_team_coverage

import "time"

// Request модель запроса покрытия команды
// Hour = nil - покрытие за день, иначе за час [Hour:00, Hour+1:00)
type Request struct {
	TeamID int64
	Date   time.Time
	Hour   *int
}

// Response модель ответа
type Response struct {
	TeamID      int64
	Date        time.Time
	Hour        *int
	Available   int
	Total       int
	PartialData bool
}
