package domain

import (
	"fmt"
	"time"
)

// SearchState classifies bookings at query time, either by where the interval
// sits relative to "now" (CURRENT/PAST/FUTURE) or by status (WAITING/REJECTED).
// It is a query parameter, never persisted.
type SearchState string

const (
	StateAll      SearchState = "ALL"
	StateCurrent  SearchState = "CURRENT"
	StatePast     SearchState = "PAST"
	StateFuture   SearchState = "FUTURE"
	StateWaiting  SearchState = "WAITING"
	StateRejected SearchState = "REJECTED"
)

// ParseSearchState validates a state name coming off the wire.
func ParseSearchState(name string) (SearchState, error) {
	switch s := SearchState(name); s {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return s, nil
	default:
		return "", fmt.Errorf("Unknown state: %s", name)
	}
}

// SearchFilter is the query predicate a SearchState denotes at a fixed instant.
// Nil fields impose no condition. The repository layer translates it into SQL;
// keeping it a plain value makes the state dispatch testable without a store.
type SearchFilter struct {
	Status      *BookingStatus
	StartBefore *time.Time
	StartAfter  *time.Time
	EndBefore   *time.Time
	EndAfter    *time.Time
}

// Filter resolves the state against a single captured "now". Unrecognized
// states degrade to ALL; the transport layer rejects them before they get here.
func (s SearchState) Filter(now time.Time) SearchFilter {
	switch s {
	case StatePast:
		return SearchFilter{EndBefore: &now}
	case StateFuture:
		return SearchFilter{StartAfter: &now}
	case StateCurrent:
		return SearchFilter{StartBefore: &now, EndAfter: &now}
	case StateWaiting:
		st := BookingWaiting
		return SearchFilter{Status: &st}
	case StateRejected:
		st := BookingRejected
		return SearchFilter{Status: &st}
	default:
		return SearchFilter{}
	}
}

// Matches reports whether a booking satisfies the filter. The repositories
// evaluate the same predicate in SQL; this in-memory form backs tests.
func (f SearchFilter) Matches(b Booking) bool {
	if f.Status != nil && b.Status != *f.Status {
		return false
	}
	if f.StartBefore != nil && !b.Start.Before(*f.StartBefore) {
		return false
	}
	if f.StartAfter != nil && !b.Start.After(*f.StartAfter) {
		return false
	}
	if f.EndBefore != nil && !b.End.Before(*f.EndBefore) {
		return false
	}
	if f.EndAfter != nil && !b.End.After(*f.EndAfter) {
		return false
	}
	return true
}
