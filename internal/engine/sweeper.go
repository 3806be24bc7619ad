package engine

import (
	"log"
	"time"
)

// Rescorer recomputes and persists connection scores for every stored
// relationship. Implemented by the store.
type Rescorer interface {
	RescoreAll() (int, error)
}

// Sweeper runs a full rescore on startup and then daily, so scores keep
// decaying even when nothing is mutated.
type Sweeper struct {
	rescorer Rescorer
	stopCh   chan struct{}
}

// NewSweeper creates a Sweeper over the given rescorer.
func NewSweeper(r Rescorer) *Sweeper {
	return &Sweeper{
		rescorer: r,
		stopCh:   make(chan struct{}),
	}
}

// Start runs one sweep immediately and schedules a daily sweep.
func (s *Sweeper) Start() {
	if updated, err := s.rescorer.RescoreAll(); err != nil {
		log.Printf("rescore error: %v", err)
	} else if updated > 0 {
		log.Printf("rescore: updated %d relationships", updated)
	}

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if updated, err := s.rescorer.RescoreAll(); err != nil {
					log.Printf("rescore error: %v", err)
				} else if updated > 0 {
					log.Printf("rescore: updated %d relationships", updated)
				}
			case <-s.stopCh:
				return
			}
		}
	}()
}

// Stop shuts down the sweeper's background goroutine.
func (s *Sweeper) Stop() {
	close(s.stopCh)
}
