package core

import "time"

// NowFn returns the current time. Tests swap it for a scripted source.
type NowFn func() time.Time

// Clock tracks time since Start with a monotonic source. All values are in
// seconds unless a method name says otherwise.
type Clock struct {
	now       NowFn
	startTime time.Time
	started   bool
	elapsed   float64
	last      float64
}

func NewClock() *Clock {
	return NewClockWithSource(time.Now)
}

func NewClockWithSource(now NowFn) *Clock {
	return &Clock{now: now}
}

// Updates the provided clock. Should be called just before checking elapsed time.
// Has no effect on non-started clocks.
func (c *Clock) Update() {
	if c.started {
		c.elapsed = c.now().Sub(c.startTime).Seconds()
	}
}

// Starts the provided clock. Resets elapsed time.
func (c *Clock) Start() {
	c.startTime = c.now()
	c.started = true
	c.elapsed = 0
	c.last = 0
}

// Stops the provided clock. Does not reset elapsed time.
func (c *Clock) Stop() {
	c.started = false
}

func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

// ElapsedMS is the high-resolution time since Start in milliseconds.
func (c *Clock) ElapsedMS() float64 {
	return c.elapsed * 1000.0
}

// Delta returns the seconds elapsed since the previous call to Delta (or
// since Start for the first call) and advances the frame marker.
func (c *Clock) Delta() float64 {
	d := c.elapsed - c.last
	c.last = c.elapsed
	if d < 0 {
		return 0
	}
	return d
}
