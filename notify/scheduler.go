package notify

import (
	"context"
	"time"
)

// Detector passes re-run on a fixed interval once started.
const scanInterval = 24 * time.Hour

// Run performs an initial scan and then rescans every 24 hours until the
// context is cancelled. Meant to be started in its own goroutine at boot;
// tests call Scan directly instead of relying on the wall clock.
func (d *Detector) Run(ctx context.Context) {
	d.Scan()

	ticker := time.NewTicker(scanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.log.Debug().Msg("detector stopped")
			return
		case <-ticker.C:
			d.Scan()
		}
	}
}
