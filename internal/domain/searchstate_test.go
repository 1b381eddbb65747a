package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSearchState(t *testing.T) {
	for _, name := range []string{"ALL", "CURRENT", "PAST", "FUTURE", "WAITING", "REJECTED"} {
		s, err := ParseSearchState(name)
		require.NoError(t, err)
		assert.Equal(t, SearchState(name), s)
	}
}

func TestParseSearchState_Unknown(t *testing.T) {
	for _, name := range []string{"UNSUPPORTED_STATUS", "all", "current", "", "Past"} {
		_, err := ParseSearchState(name)
		require.Error(t, err, "state %q should be rejected", name)
		assert.Equal(t, "Unknown state: "+name, err.Error())
	}
}

func TestSearchFilter_Partition(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	past := Booking{Start: now.Add(-48 * time.Hour), End: now.Add(-24 * time.Hour), Status: BookingApproved}
	current := Booking{Start: now.Add(-1 * time.Hour), End: now.Add(1 * time.Hour), Status: BookingApproved}
	future := Booking{Start: now.Add(24 * time.Hour), End: now.Add(48 * time.Hour), Status: BookingWaiting}
	rejected := Booking{Start: now.Add(24 * time.Hour), End: now.Add(48 * time.Hour), Status: BookingRejected}

	tests := []struct {
		state SearchState
		want  map[string]bool
	}{
		{StateAll, map[string]bool{"past": true, "current": true, "future": true, "rejected": true}},
		{StatePast, map[string]bool{"past": true, "current": false, "future": false, "rejected": false}},
		{StateCurrent, map[string]bool{"past": false, "current": true, "future": false, "rejected": false}},
		{StateFuture, map[string]bool{"past": false, "current": false, "future": true, "rejected": true}},
		{StateWaiting, map[string]bool{"past": false, "current": false, "future": true, "rejected": false}},
		{StateRejected, map[string]bool{"past": false, "current": false, "future": false, "rejected": true}},
	}

	bookings := map[string]Booking{"past": past, "current": current, "future": future, "rejected": rejected}

	for _, tt := range tests {
		f := tt.state.Filter(now)
		for name, b := range bookings {
			assert.Equal(t, tt.want[name], f.Matches(b), "state %s booking %s", tt.state, name)
		}
	}
}

func TestSearchFilter_BoundaryInstants(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	// A booking starting exactly now is neither FUTURE (strictly after) nor
	// CURRENT at its first instant on the start side.
	startsNow := Booking{Start: now, End: now.Add(time.Hour), Status: BookingApproved}
	assert.False(t, StateFuture.Filter(now).Matches(startsNow))
	assert.False(t, StateCurrent.Filter(now).Matches(startsNow))

	// A booking ending exactly now is not PAST (strictly before).
	endsNow := Booking{Start: now.Add(-time.Hour), End: now, Status: BookingApproved}
	assert.False(t, StatePast.Filter(now).Matches(endsNow))
}
