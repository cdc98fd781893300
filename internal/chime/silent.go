package chime

import (
	"context"

	"github.com/hammamikhairi/whatscooking/internal/domain"
	"github.com/hammamikhairi/whatscooking/internal/logger"
)

var _ domain.Chimer = (*Silent)(nil)

// Silent is a Chimer that only logs. Used when the chime is disabled or
// no audio device is available.
type Silent struct {
	log *logger.Logger
}

// NewSilent creates a silent chimer.
func NewSilent(log *logger.Logger) *Silent {
	return &Silent{log: log}
}

// Chime logs and returns immediately.
func (s *Silent) Chime(ctx context.Context) error {
	s.log.Debug("chime: silent")
	return nil
}
