package clock

import "time"

// Clock abstracts "now" so temporal query predicates are deterministic in
// tests. Services capture one instant per operation and reuse it.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns the wall clock.
func System() Clock { return systemClock{} }
