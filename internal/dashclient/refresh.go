package dashclient

import (
	"context"
	"sync"
	"time"

	"treasuryd/internal/common"
	"treasuryd/internal/models"
)

// DefaultRefreshInterval is how often the controller re-fetches the
// full snapshot.
const DefaultRefreshInterval = 5 * time.Minute

// RefreshState is the controller's lifecycle state.
type RefreshState string

const (
	StateInitializing RefreshState = "initializing"
	StateReady        RefreshState = "ready"
	StateError        RefreshState = "error"
)

// SnapshotFetcher retrieves a fresh dashboard snapshot.
type SnapshotFetcher func(ctx context.Context) (*models.DashboardSnapshot, error)

// RefreshController keeps a dashboard snapshot current by re-fetching
// it on a fixed interval.
//
// The failure policy is asymmetric. A failed initial fetch moves the
// controller to the error state so the caller can show an error view.
// A failed background fetch is only logged: the last good snapshot
// stays on display, since staleness beats flashing an error on a
// transient hiccup. Every successful fetch replaces the snapshot
// wholesale and clears any prior error.
type RefreshController struct {
	fetch    SnapshotFetcher
	interval time.Duration
	logger   *common.Logger

	mu       sync.Mutex
	state    RefreshState
	snapshot *models.DashboardSnapshot
	errMsg   string
	fetched  bool

	cancel context.CancelFunc
	done   chan struct{}
}

// NewRefreshController creates a stopped controller. interval <= 0
// selects DefaultRefreshInterval.
func NewRefreshController(fetch SnapshotFetcher, interval time.Duration, logger *common.Logger) *RefreshController {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &RefreshController{
		fetch:    fetch,
		interval: interval,
		logger:   logger,
		state:    StateInitializing,
	}
}

// Start fires an immediate fetch and then refreshes on the interval
// until Stop is called. Start may be called once.
func (rc *RefreshController) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	rc.cancel = cancel
	rc.done = make(chan struct{})

	go func() {
		defer close(rc.done)

		rc.runFetch(ctx)

		ticker := time.NewTicker(rc.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rc.runFetch(ctx)
			}
		}
	}()
}

// Stop cancels the timer and any in-flight fetch. A fetch already in
// flight at Stop time never applies its result.
func (rc *RefreshController) Stop() {
	if rc.cancel == nil {
		return
	}
	rc.cancel()
	<-rc.done
}

// State returns the current lifecycle state.
func (rc *RefreshController) State() RefreshState {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.state
}

// Snapshot returns the last successfully fetched snapshot, or nil.
func (rc *RefreshController) Snapshot() *models.DashboardSnapshot {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.snapshot
}

// Err returns the error message from a failed initial fetch, empty
// otherwise.
func (rc *RefreshController) Err() string {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.errMsg
}

func (rc *RefreshController) runFetch(ctx context.Context) {
	snapshot, err := rc.fetch(ctx)

	// Drop results that complete after Stop.
	if ctx.Err() != nil {
		return
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	initial := !rc.fetched
	rc.fetched = true

	if err != nil {
		if initial {
			rc.state = StateError
			rc.errMsg = err.Error()
		} else {
			rc.logger.Warn().Err(err).Msg("Background refresh failed, keeping last snapshot")
		}
		return
	}

	rc.state = StateReady
	rc.snapshot = snapshot
	rc.errMsg = ""
}
