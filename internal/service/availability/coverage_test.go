package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	"github.com/m04kA/SMC-TeamScheduling/pkg/ptr"
)

func memberWith(status domain.CalendarSyncStatus, slots ...domain.AvailabilitySlot) *domain.MemberAvailability {
	return &domain.MemberAvailability{
		MemberID:           1,
		CalendarSyncStatus: status,
		Slots:              map[string][]domain.AvailabilitySlot{domain.DateKey(testDay): slots},
	}
}

func busy(start, end string, source domain.SlotSource) domain.AvailabilitySlot {
	return domain.AvailabilitySlot{StartTime: ts(start), EndTime: ts(end), Source: source}
}

func TestBusyMinutes(t *testing.T) {
	tests := []struct {
		name  string
		slots []domain.AvailabilitySlot
		want  int
	}{
		{name: "empty", want: 0},
		{
			name:  "overlap counted once",
			slots: []domain.AvailabilitySlot{busy("10:00", "13:00", domain.SourceBooking), busy("11:00", "12:00", domain.SourceGoogleCalendar)},
			want:  180,
		},
		{
			name:  "touching intervals",
			slots: []domain.AvailabilitySlot{busy("08:00", "09:00", domain.SourceManual), busy("09:00", "10:00", domain.SourceBooking)},
			want:  120,
		},
		{
			name:  "disjoint",
			slots: []domain.AvailabilitySlot{busy("14:00", "15:30", domain.SourceBooking), busy("08:00", "09:00", domain.SourceManual)},
			want:  150,
		},
		{
			name: "available slots ignored",
			slots: []domain.AvailabilitySlot{
				{StartTime: ts("08:00"), EndTime: ts("18:00"), IsAvailable: true, Source: domain.SourceManual},
			},
			want: 0,
		},
		{
			name:  "end of day",
			slots: []domain.AvailabilitySlot{busy("22:00", "24:00", domain.SourceGoogleCalendar)},
			want:  120,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BusyMinutes(tt.slots))
		})
	}
}

func TestDayStatus(t *testing.T) {
	tests := []struct {
		name   string
		member *domain.MemberAvailability
		want   domain.DayStatus
	}{
		{name: "available", member: memberWith(domain.SyncSynced), want: domain.DayAvailable},
		{name: "partial", member: memberWith(domain.SyncSynced, busy("10:00", "13:00", domain.SourceBooking)), want: domain.DayPartial},
		{
			name: "busy at threshold",
			member: memberWith(domain.SyncSynced,
				busy("08:00", "12:00", domain.SourceBooking),
				busy("12:00", "16:00", domain.SourceGoogleCalendar)),
			want: domain.DayBusy,
		},
		{
			name: "overlap does not reach threshold",
			member: memberWith(domain.SyncSynced,
				busy("08:00", "14:00", domain.SourceBooking),
				busy("10:00", "15:00", domain.SourceGoogleCalendar)),
			want: domain.DayPartial,
		},
		{
			name:   "busy outside working day counts",
			member: memberWith(domain.SyncSynced, busy("00:00", "08:00", domain.SourceGoogleCalendar)),
			want:   domain.DayBusy,
		},
		{name: "sync failed still computed", member: memberWith(domain.SyncFailed, busy("09:00", "10:00", domain.SourceManual)), want: domain.DayPartial},
		{name: "not connected", member: memberWith(domain.SyncNotConnected), want: domain.DayNotSynced},
		{
			name:   "pending setup overrides busy",
			member: memberWith(domain.SyncPendingSetup, busy("00:00", "24:00", domain.SourceBooking)),
			want:   domain.DayNotSynced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayStatus(tt.member, testDay))
		})
	}
}

func TestSummarize_Utilisation(t *testing.T) {
	summary := Summarize(memberWith(domain.SyncSynced, busy("08:00", "13:00", domain.SourceBooking)), testDay)
	assert.Equal(t, 300, summary.BusyMinutes)
	assert.InDelta(t, 0.5, summary.Utilisation, 1e-9)

	summary = Summarize(memberWith(domain.SyncSynced, busy("00:00", "24:00", domain.SourceManual)), testDay)
	assert.InDelta(t, 1.0, summary.Utilisation, 1e-9)
}

func TestHourlyStatus(t *testing.T) {
	member := memberWith(domain.SyncSynced,
		busy("10:00", "13:00", domain.SourceBooking),
		busy("14:30", "14:45", domain.SourceGoogleCalendar),
	)

	assert.Equal(t, domain.HourAvailable, HourlyStatus(member, testDay, 9))
	assert.Equal(t, domain.HourBusy, HourlyStatus(member, testDay, 10))
	assert.Equal(t, domain.HourBusy, HourlyStatus(member, testDay, 12))
	assert.Equal(t, domain.HourAvailable, HourlyStatus(member, testDay, 13))
	assert.Equal(t, domain.HourBusy, HourlyStatus(member, testDay, 14))

	assert.Equal(t, domain.HourNotSynced, HourlyStatus(memberWith(domain.SyncNotConnected), testDay, 10))
}

func TestDayGrid(t *testing.T) {
	bookingSlot := busy("10:00", "13:00", domain.SourceBooking)
	bookingSlot.BookingID = ptr.Ptr(int64(42))
	member := memberWith(domain.SyncSynced, bookingSlot, busy("15:00", "16:00", domain.SourceGoogleCalendar))

	cells := DayGrid(member, testDay, 8, 18)

	// 8, 9, 10(span 3), 13, 14, 15, 16, 17
	require.Len(t, cells, 8)
	assert.Equal(t, 10, cells[2].Hour)
	assert.Equal(t, 3, cells[2].Span)
	assert.Equal(t, domain.HourBusy, cells[2].Status)
	assert.Equal(t, int64(42), *cells[2].BookingID)

	assert.Equal(t, 13, cells[3].Hour)
	assert.Equal(t, domain.HourAvailable, cells[3].Status)

	assert.Equal(t, 15, cells[5].Hour)
	assert.Equal(t, 1, cells[5].Span)
	assert.Equal(t, domain.HourBusy, cells[5].Status)
	assert.Nil(t, cells[5].BookingID)

	total := 0
	for _, c := range cells {
		total += c.Span
	}
	assert.Equal(t, 10, total)
}

func TestDayGrid_AdjacentBookingsBothShown(t *testing.T) {
	first := busy("09:00", "10:15", domain.SourceBooking)
	first.BookingID = ptr.Ptr(int64(1))
	second := busy("10:15", "14:00", domain.SourceBooking)
	second.BookingID = ptr.Ptr(int64(2))
	member := memberWith(domain.SyncSynced, first, second)

	cells := DayGrid(member, testDay, 8, 18)

	// 8, 9(#1), 10(#2, span 4), 14, 15, 16, 17
	require.Len(t, cells, 7)
	assert.Equal(t, 9, cells[1].Hour)
	assert.Equal(t, 1, cells[1].Span)
	assert.Equal(t, int64(1), *cells[1].BookingID)

	assert.Equal(t, 10, cells[2].Hour)
	assert.Equal(t, 4, cells[2].Span)
	assert.Equal(t, int64(2), *cells[2].BookingID)
	assert.Equal(t, domain.HourBusy, cells[2].Status)

	assert.Equal(t, 14, cells[3].Hour)
	assert.Equal(t, domain.HourAvailable, cells[3].Status)
}

func TestDayGrid_SpanClippedToWindow(t *testing.T) {
	member := memberWith(domain.SyncSynced, busy("16:30", "20:00", domain.SourceBooking))

	cells := DayGrid(member, testDay, 8, 18)

	last := cells[len(cells)-1]
	assert.Equal(t, 16, last.Hour)
	assert.Equal(t, 2, last.Span)
}

func TestTeamCoverage(t *testing.T) {
	members := []*domain.MemberAvailability{
		memberWith(domain.SyncSynced),
		memberWith(domain.SyncSynced, busy("10:00", "12:00", domain.SourceBooking)),
		memberWith(domain.SyncSynced, busy("08:00", "17:00", domain.SourceBooking)),
		memberWith(domain.SyncNotConnected),
	}

	assert.Equal(t, domain.Coverage{Available: 2, Total: 4}, TeamCoverageDay(members, testDay))
	assert.Equal(t, domain.Coverage{Available: 1, Total: 4}, TeamCoverageHour(members, testDay, 11))
	assert.Equal(t, domain.Coverage{Available: 3, Total: 4}, TeamCoverageHour(members, testDay, 17))
	assert.Equal(t, domain.Coverage{Available: 0, Total: 0}, TeamCoverageDay(nil, testDay))
}
