package digest

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DigestFunc is the function called to produce one digest run.
type DigestFunc func() error

// Scheduler manages periodic study digest runs.
type Scheduler struct {
	mu            sync.Mutex
	enabled       bool
	intervalHours int
	lastRunTime   time.Time
	lastRunStatus string
	isRunning     bool
	digestFunc    DigestFunc
	ticker        *time.Ticker
	stopCh        chan struct{}
}

// NewScheduler creates a new digest scheduler.
func NewScheduler(digestFunc DigestFunc) *Scheduler {
	return &Scheduler{
		digestFunc:    digestFunc,
		intervalHours: 24,
	}
}

// Status returns the current digest status.
type Status struct {
	Enabled       bool   `json:"enabled"`
	IntervalHours int    `json:"interval_hours"`
	LastRunTime   string `json:"last_run_time"`
	LastRunStatus string `json:"last_run_status"`
	IsRunning     bool   `json:"is_running"`
}

// GetStatus returns the current scheduler status.
func (s *Scheduler) GetStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	lastTime := ""
	if !s.lastRunTime.IsZero() {
		lastTime = s.lastRunTime.Format(time.RFC3339)
	}
	return Status{
		Enabled:       s.enabled,
		IntervalHours: s.intervalHours,
		LastRunTime:   lastTime,
		LastRunStatus: s.lastRunStatus,
		IsRunning:     s.isRunning,
	}
}

// Configure updates the scheduler settings and restarts if needed.
func (s *Scheduler) Configure(enabled bool, intervalHours int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enabled = enabled
	if intervalHours >= 1 && intervalHours <= 168 {
		s.intervalHours = intervalHours
	}

	s.stopTicker()
	if s.enabled {
		s.startTicker()
	}
}

func (s *Scheduler) stopTicker() {
	if s.ticker != nil {
		s.ticker.Stop()
		close(s.stopCh)
		s.ticker = nil
		s.stopCh = nil
	}
}

func (s *Scheduler) startTicker() {
	s.ticker = time.NewTicker(time.Duration(s.intervalHours) * time.Hour)
	s.stopCh = make(chan struct{})

	go func() {
		for {
			select {
			case <-s.ticker.C:
				s.Run()
			case <-s.stopCh:
				return
			}
		}
	}()
	log.Info().Int("interval_hours", s.intervalHours).Msg("digest scheduler started")
}

// Run executes one digest pass. Safe to call concurrently; overlapping
// runs are collapsed into one.
func (s *Scheduler) Run() {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.mu.Unlock()

	log.Info().Msg("digest run started")
	err := s.digestFunc()

	s.mu.Lock()
	s.isRunning = false
	s.lastRunTime = time.Now()
	if err != nil {
		s.lastRunStatus = "failed"
		log.Error().Err(err).Msg("digest run failed")
	} else {
		s.lastRunStatus = "success"
		log.Info().Msg("digest run completed")
	}
	s.mu.Unlock()
}

// Stop shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTicker()
}
