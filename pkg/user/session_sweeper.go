package user

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// SweepExpiredSessions deletes expired session rows every interval until ctx
// is done.
func SweepExpiredSessions(ctx context.Context, userRepository UserRepository, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := userRepository.DeleteExpiredSessions(ctx, now)
			if err != nil {
				log.Errorf("sweeping expired sessions: %v", err)
				continue
			}
			if n > 0 {
				log.Infof("swept %d expired sessions", n)
			}
		}
	}
}
