package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr error
	}{
		{name: "regular", input: "09:30", want: "09:30"},
		{name: "postgres time", input: "13:00:00", want: "13:00"},
		{name: "end of day", input: "24:00", want: "24:00"},
		{name: "past end of day", input: "24:30", wantErr: ErrTimeOutOfDay},
		{name: "single digit hour", input: "9:30", wantErr: ErrInvalidTimeString},
		{name: "bad minutes", input: "10:75", wantErr: ErrInvalidTimeString},
		{name: "non zero seconds", input: "10:00:15", wantErr: ErrInvalidTimeString},
		{name: "garbage", input: "ten", wantErr: ErrInvalidTimeString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	start := MustTimeString("10:00")

	end, err := start.AddMinutes(180)
	require.NoError(t, err)
	assert.Equal(t, TimeString("13:00"), end)

	end, err = MustTimeString("22:30").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), end)

	_, err = MustTimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOutOfDay)
}

func TestTimeString_Compare(t *testing.T) {
	a := MustTimeString("09:30")
	b := MustTimeString("11:00")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.True(t, a.Equal(MustTimeString("09:30:00")))
	assert.Equal(t, 570, a.Minutes())
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("08:15:00")))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 17, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("17:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
