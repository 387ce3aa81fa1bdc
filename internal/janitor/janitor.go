// Package janitor runs the periodic purge of expired tasks.
package janitor

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/kozaktomas/companion-backend/internal/database"
)

// Janitor periodically deletes tasks older than the retention window. It is
// constructed explicitly and started/stopped with the server lifecycle; the
// timer is process-local and starts from zero on every boot.
type Janitor struct {
	tasks     database.TaskStore
	interval  time.Duration
	retention time.Duration

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a janitor that fires every interval and purges tasks older
// than retention.
func New(tasks database.TaskStore, interval, retention time.Duration) *Janitor {
	return &Janitor{
		tasks:     tasks,
		interval:  interval,
		retention: retention,
		stopCh:    make(chan struct{}),
	}
}

// Start launches the background purge loop. The first purge happens one
// full interval after start, matching the original scheduler behavior.
func (j *Janitor) Start() {
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()

		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				j.purge()
			case <-j.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the purge loop and waits for it to exit. An in-flight
// purge runs to completion first.
func (j *Janitor) Stop() {
	j.stopOnce.Do(func() { close(j.stopCh) })
	j.wg.Wait()
}

// purge deletes expired tasks. Failures are logged and swallowed so the
// next scheduled firing is unaffected.
func (j *Janitor) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().UTC().Add(-j.retention)
	count, err := j.tasks.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("janitor: purging old tasks: %v", err)
		return
	}
	if count > 0 {
		log.Printf("janitor: deleted %d old tasks", count)
	}
}
