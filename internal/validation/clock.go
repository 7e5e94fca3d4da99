package validation

import "time"

//go:generate mockgen -source=clock.go -destination=clock_mock.go -package=validation
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock at validation time, so the accepted date
// range moves with the calendar year.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock pins the reference date, making results reproducible across years.
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}
