package services

import "time"

// Clock abstracts wall-clock reads so duration computations are
// deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
