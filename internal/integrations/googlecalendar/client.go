package googlecalendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	"github.com/m04kA/SMC-TeamScheduling/pkg/types"
)

// Client получает занятость клинеров через Google Calendar FreeBusy API
type Client struct {
	service  *calendar.Service
	location *time.Location
	now      func() time.Time
	log      Logger
}

// NewClient создает клиент с OAuth2 авторизацией по refresh token
func NewClient(ctx context.Context, cfg Config, log Logger) (*Client, error) {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     endpoints.Google,
		Scopes:       []string{calendar.CalendarReadonlyScope},
	}

	tokenSource := oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})
	httpClient := oauth2.NewClient(ctx, tokenSource)
	httpClient.Timeout = cfg.Timeout

	return newClient(ctx, httpClient, cfg.Endpoint, cfg.Location, log)
}

func newClient(ctx context.Context, httpClient *http.Client, endpoint string, location *time.Location, log Logger) (*Client, error) {
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	service, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: NewClient - create calendar service: %v", ErrInternal, err)
	}

	if location == nil {
		location = time.UTC
	}

	return &Client{
		service:  service,
		location: location,
		now:      time.Now,
		log:      log,
	}, nil
}

// Fetch получает занятые интервалы клинера за период
// Интервалы, переходящие через полночь, разбиваются на блоки в пределах одного дня
func (c *Client) Fetch(ctx context.Context, member *domain.Member, dateRange domain.DateRange) (*domain.CalendarFetch, error) {
	if member.CalendarID == nil || *member.CalendarID == "" {
		return nil, ErrNotConnected
	}
	calendarID := *member.CalendarID

	localRange := domain.DateRange{
		Start: inLocation(dateRange.Start, c.location),
		End:   inLocation(dateRange.End, c.location),
	}
	start := localRange.Start
	end := localRange.End.AddDate(0, 0, 1)

	request := &calendar.FreeBusyRequest{
		TimeMin:  start.Format(time.RFC3339),
		TimeMax:  end.Format(time.RFC3339),
		TimeZone: c.location.String(),
		Items:    []*calendar.FreeBusyRequestItem{{Id: calendarID}},
	}

	response, err := c.service.Freebusy.Query(request).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
			return nil, fmt.Errorf("%w: member_id=%d", ErrCalendarNotFound, member.ID)
		}
		return nil, fmt.Errorf("%w: Fetch - freebusy query member_id=%d: %v", ErrInternal, member.ID, err)
	}

	busy, ok := response.Calendars[calendarID]
	if !ok {
		return nil, fmt.Errorf("%w: Fetch - calendar missing in response member_id=%d", ErrInvalidResponse, member.ID)
	}
	for _, apiErr := range busy.Errors {
		if apiErr.Reason == "notFound" {
			return nil, fmt.Errorf("%w: member_id=%d", ErrCalendarNotFound, member.ID)
		}
		return nil, fmt.Errorf("%w: Fetch - calendar error member_id=%d reason=%s", ErrInvalidResponse, member.ID, apiErr.Reason)
	}

	blocks := make([]domain.CalendarBlock, 0, len(busy.Busy))
	for _, period := range busy.Busy {
		periodStart, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: Fetch - parse busy start %q: %v", ErrInvalidResponse, period.Start, err)
		}
		periodEnd, err := time.Parse(time.RFC3339, period.End)
		if err != nil {
			return nil, fmt.Errorf("%w: Fetch - parse busy end %q: %v", ErrInvalidResponse, period.End, err)
		}

		blocks = append(blocks, splitByDay(periodStart, periodEnd, c.location, localRange)...)
	}

	c.log.Info("Fetch: fetched calendar member_id=%d blocks=%d", member.ID, len(blocks))

	return &domain.CalendarFetch{
		Blocks:    blocks,
		FetchedAt: c.now(),
	}, nil
}

// splitByDay режет интервал [start, end) на блоки внутри суток в указанной локации
// Блоки вне dateRange отбрасываются, dateRange задан в той же локации
func splitByDay(start, end time.Time, location *time.Location, dateRange domain.DateRange) []domain.CalendarBlock {
	start = start.In(location)
	end = end.In(location)

	blocks := make([]domain.CalendarBlock, 0, 1)
	for day := domain.TruncateDate(start); day.Before(end); day = day.AddDate(0, 0, 1) {
		nextDay := day.AddDate(0, 0, 1)

		blockStart := start
		if blockStart.Before(day) {
			blockStart = day
		}
		blockEnd := end
		if blockEnd.After(nextDay) {
			blockEnd = nextDay
		}
		if !blockStart.Before(blockEnd) || !dateRange.Contains(day) {
			continue
		}

		startTime := clockOf(blockStart)
		endTime := clockOf(blockEnd)
		if blockEnd.Equal(nextDay) {
			endTime = types.TimeString("24:00")
		}
		if !startTime.IsBefore(endTime) {
			continue
		}

		blocks = append(blocks, domain.CalendarBlock{
			Date:      day,
			StartTime: startTime,
			EndTime:   endTime,
		})
	}

	return blocks
}

func clockOf(t time.Time) types.TimeString {
	ts, _ := types.NewTimeStringFromMinutes(t.Hour()*60 + t.Minute())
	return ts
}

func inLocation(date time.Time, location *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, location)
}
