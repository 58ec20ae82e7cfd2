package usecase

import (
	"context"
	"time"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger func(ctx context.Context) error

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	checks map[string]Pinger
}

// NewHealthUsecase checks every named dependency. A nil Pinger is reported
// as "disabled" and never fails the check.
func NewHealthUsecase(checks map[string]Pinger) HealthUsecase {
	return &healthUsecase{checks: checks}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "ok"}
	healthy := true
	for name, ping := range u.checks {
		switch {
		case ping == nil:
			status[name] = "disabled"
		case ping(ctx) != nil:
			status[name] = "unavailable"
			healthy = false
		default:
			status[name] = "ok"
		}
	}
	if !healthy {
		status["status"] = "degraded"
	}
	return status, healthy
}
