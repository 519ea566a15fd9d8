package sqlite

import "time"

type Option func(*SQLite)

func BusyTimeout(d time.Duration) Option {
	return func(s *SQLite) {
		if d > 0 {
			s.busyTimeout = d
		}
	}
}

func MaxOpenConns(n int) Option {
	return func(s *SQLite) {
		if n > 0 {
			s.maxOpenConns = n
		}
	}
}
