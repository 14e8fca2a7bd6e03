package logging

import "time"

// SetClock replaces the timestamp source.
func (s *StatusLog) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
