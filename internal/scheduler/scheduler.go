package scheduler

import (
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"estates/server/internal/database"
)

// CoordinateUpdater fills in coordinates for buildings that lack them.
type CoordinateUpdater interface {
	UpdateMissingCoordinates(geocoder database.AddressGeocoder, logger *logrus.Logger) error
}

// Scheduler periodically geocodes buildings without coordinates
type Scheduler struct {
	store    CoordinateUpdater
	geocoder database.AddressGeocoder
	logger   *logrus.Logger
	interval time.Duration
	stopChan chan struct{}
	wg       sync.WaitGroup
	jobMutex sync.Mutex // Ensures sequential job execution
}

// NewScheduler creates a new scheduler running every interval
func NewScheduler(store CoordinateUpdater, geocoder database.AddressGeocoder, logger *logrus.Logger, interval time.Duration) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}
	if interval <= 0 {
		interval = time.Hour
	}

	return &Scheduler{
		store:    store,
		geocoder: geocoder,
		logger:   logger,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start runs the geocoding job once and then on every tick
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.runScheduler()
}

func (s *Scheduler) runScheduler() {
	defer s.wg.Done()

	s.logger.Info("Running startup geocoding job")
	s.RunOnce()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.RunOnce()
		}
	}
}

// RunOnce geocodes pending buildings; concurrent calls are serialized
func (s *Scheduler) RunOnce() {
	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()

	if err := s.store.UpdateMissingCoordinates(s.geocoder, s.logger); err != nil {
		s.logger.WithError(err).Error("Geocoding job failed")
	}
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}
