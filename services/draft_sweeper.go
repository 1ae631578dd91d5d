package services

import (
	"log"

	"hotel-dashboard-server/storage"

	"github.com/robfig/cron/v3"
)

// StartDraftSweeper schedules the hourly cleanup of expired wizard drafts.
// Redis-backed drafts expire via key TTL; this covers the in-process
// fallback store. The returned cron can be stopped on shutdown.
func StartDraftSweeper(store *storage.DraftStore) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("@hourly", func() {
		if removed := store.SweepExpired(); removed > 0 {
			log.Printf("draft sweeper: removed %d expired drafts", removed)
		}
	})
	if err != nil {
		log.Printf("draft sweeper: failed to schedule: %v", err)
		return c
	}
	c.Start()
	return c
}
