package retry

import (
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/appstager/internal/logfields"
)

// Do runs fn up to 1+pol.MaxRetries times, sleeping per the policy's backoff
// schedule between attempts. On exhaustion the final error is returned wrapped
// with the operation name; callers decide whether to surface or suppress it.
func Do(pol Policy, op string, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= pol.MaxRetries; attempt++ {
		if attempt > 0 {
			slog.Warn("retrying operation", slog.String("operation", op), logfields.Attempt(attempt))
		}
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if attempt == pol.MaxRetries {
			break
		}
		time.Sleep(pol.Delay(attempt + 1))
	}
	return fmt.Errorf("%s failed after %d attempts: %w", op, pol.MaxRetries+1, lastErr)
}
