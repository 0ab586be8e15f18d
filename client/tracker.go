package client

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/careerconnect/careerconnect/database/model"

	"go.uber.org/atomic"
)

const (
	DefaultPollInterval = 8 * time.Second
	DefaultRetryDelay   = 4 * time.Second
)

var ErrTrackerRunning = errors.New("tracker is already running")

// Stats summarises a list of applications. Everything neither approved nor
// rejected counts as pending. SuccessRate is a percentage rounded to one
// decimal.
type Stats struct {
	Total       int
	Approved    int
	Rejected    int
	Pending     int
	SuccessRate float64
}

func ComputeStats(apps []model.Application) Stats {
	s := Stats{Total: len(apps)}
	for _, a := range apps {
		switch a.Status {
		case model.StatusApproved:
			s.Approved++
		case model.StatusRejected:
			s.Rejected++
		}
	}
	s.Pending = s.Total - s.Approved - s.Rejected
	if s.Total > 0 {
		s.SuccessRate = math.Round(float64(s.Approved)*1000/float64(s.Total)) / 10
	}
	return s
}

// Snapshot is the result of one poll. Err is set when the poll failed, in
// which case Applications is empty.
type Snapshot struct {
	Applications []model.Application
	Stats        Stats
	Err          error
	At           time.Time
}

// Tracker polls the signed-in user's applications.
type Tracker struct {
	client   *Client
	onUpdate func(Snapshot)

	Interval   time.Duration
	RetryDelay time.Duration

	running atomic.Bool
	polls   atomic.Int64
}

// NewTracker reports every poll to onUpdate, from the goroutine calling Run.
func NewTracker(c *Client, onUpdate func(Snapshot)) *Tracker {
	return &Tracker{
		client:     c,
		onUpdate:   onUpdate,
		Interval:   DefaultPollInterval,
		RetryDelay: DefaultRetryDelay,
	}
}

// Polls is the number of polls made so far.
func (t *Tracker) Polls() int64 {
	return t.polls.Load()
}

func (t *Tracker) Running() bool {
	return t.running.Load()
}

// Poll fetches the applications once.
func (t *Tracker) Poll(ctx context.Context) Snapshot {
	t.polls.Inc()
	apps, err := t.client.MyApplications(ctx)
	if err != nil {
		apps = nil
	}
	return Snapshot{Applications: apps, Stats: ComputeStats(apps), Err: err, At: time.Now()}
}

// Run polls immediately and then every Interval until ctx is done. A poll
// that fails or finds no applications is retried once after RetryDelay,
// ahead of the next tick. Non-positive durations fall back to the defaults.
func (t *Tracker) Run(ctx context.Context) error {
	if !t.running.CompareAndSwap(false, true) {
		return ErrTrackerRunning
	}
	defer t.running.Store(false)

	interval, retryDelay := t.Interval, t.RetryDelay
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	var retry <-chan time.Time

	poll := func(isRetry bool) {
		snap := t.Poll(ctx)
		if ctx.Err() != nil {
			return
		}
		if t.onUpdate != nil {
			t.onUpdate(snap)
		}
		retry = nil
		if !isRetry && (snap.Err != nil || len(snap.Applications) == 0) {
			retry = time.After(retryDelay)
		}
	}

	poll(false)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			poll(false)
		case <-retry:
			poll(true)
		}
	}
}
