package jobs

import (
	"context"
	"log"
	"time"

	"github.com/hostelites/hostelites-api/store"
)

// LedgerJob garbage-collects room availability ledgers. Dates in the past
// can never intersect a search range, so dropping them only shrinks the
// documents.
type LedgerJob struct {
	rooms store.RoomStore
}

func NewLedgerJob(rooms store.RoomStore) *LedgerJob {
	return &LedgerJob{rooms: rooms}
}

func (j *LedgerJob) PruneExpiredDates() {
	log.Println("Running job: PruneExpiredDates...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := time.Now().UTC()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	modified, err := j.rooms.PruneNotAvailableBefore(ctx, cutoff)
	if err != nil {
		log.Printf("Error pruning availability ledgers: %v", err)
		return
	}
	if modified > 0 {
		log.Printf("Pruned expired dates from %d rooms", modified)
	}
}
