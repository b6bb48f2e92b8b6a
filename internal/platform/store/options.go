package store

import (
	"devportal/internal/platform/logger"
)

// Option mutates the Store while Open assembles it
type Option func(*Store) error

// WithLogger routes backend logs, including the SQL trace, through log
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}
