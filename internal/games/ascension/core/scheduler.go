package core

import "time"

// Msg is a time-driven message delivered by the Scheduler.
type Msg interface {
	isMsg()
}

// TickMsg is the once-per-second countdown message.
type TickMsg struct{}

// CoinExpiredMsg ends the cooldown window of one coin cell.
type CoinExpiredMsg struct {
	Key string
}

func (TickMsg) isMsg()        {}
func (CoinExpiredMsg) isMsg() {}

type oneShot struct {
	due time.Duration
	seq uint64
	msg Msg
}

// Scheduler runs a virtual clock with one repeating ticker and any number
// of independent one-shot timers. The owner advances the clock; due
// messages are handed back synchronously in chronological order.
type Scheduler struct {
	now       time.Duration
	interval  time.Duration
	ticking   bool
	paused    bool
	nextTick  time.Duration
	remaining time.Duration // time to next tick, frozen while paused
	timers    []oneShot
	seq       uint64
}

// NewScheduler creates a scheduler whose ticker fires every interval.
func NewScheduler(interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Scheduler{interval: interval}
}

// Now returns the elapsed virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// StartTicker (re)starts the repeating ticker one full interval from now.
func (s *Scheduler) StartTicker() {
	s.ticking = true
	s.paused = false
	s.nextTick = s.now + s.interval
}

// PauseTicker suspends the ticker, keeping the partial interval.
func (s *Scheduler) PauseTicker() {
	if !s.ticking || s.paused {
		return
	}
	s.remaining = s.nextTick - s.now
	s.paused = true
}

// ResumeTicker continues a paused ticker from where it stopped.
func (s *Scheduler) ResumeTicker() {
	if !s.ticking || !s.paused {
		return
	}
	s.nextTick = s.now + s.remaining
	s.paused = false
}

// StopTicker tears the ticker down.
func (s *Scheduler) StopTicker() {
	s.ticking = false
	s.paused = false
}

// Ticking reports whether the ticker is running and not paused.
func (s *Scheduler) Ticking() bool {
	return s.ticking && !s.paused
}

// After schedules msg to be delivered once, d from now.
func (s *Scheduler) After(d time.Duration, msg Msg) {
	s.seq++
	s.timers = append(s.timers, oneShot{due: s.now + d, seq: s.seq, msg: msg})
}

// Pending returns the number of one-shot timers not yet delivered.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Stop tears down the ticker and drops every pending timer.
func (s *Scheduler) Stop() {
	s.StopTicker()
	s.timers = nil
}

// Advance moves the clock forward by dt, calling deliver for each due
// message. deliver may stop, pause or schedule; the next due message is
// chosen after each delivery.
func (s *Scheduler) Advance(dt time.Duration, deliver func(Msg)) {
	target := s.now + dt
	for {
		idx, due, ok := s.nextDue()
		if !ok || due > target {
			break
		}
		s.now = due
		if idx < 0 {
			s.nextTick += s.interval
			deliver(TickMsg{})
			continue
		}
		msg := s.timers[idx].msg
		s.timers = append(s.timers[:idx], s.timers[idx+1:]...)
		deliver(msg)
	}
	s.now = target
}

// nextDue finds the earliest pending event. idx is -1 for the ticker.
// Ties go to one-shot timers in scheduling order, then the ticker.
func (s *Scheduler) nextDue() (idx int, due time.Duration, ok bool) {
	idx = -1
	for i, t := range s.timers {
		if !ok || t.due < due || (t.due == due && t.seq < s.timers[idx].seq) {
			idx, due, ok = i, t.due, true
		}
	}
	if s.Ticking() && (!ok || s.nextTick < due) {
		return -1, s.nextTick, true
	}
	return idx, due, ok
}
