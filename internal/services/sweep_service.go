package services

import (
	"context"
	"log"
	"sync"
	"time"

	"crowdwatch/internal/config"
	"crowdwatch/internal/domain/entities"
	"crowdwatch/internal/repository"
)

// SweepService owns the two background timers: the scan-and-alert pass over
// overcrowded locations and the pending-queue retry. Both run on one
// goroutine so the passes never overlap each other. Tests call RunScanOnce
// and RunRetryOnce directly instead of waiting on wall-clock ticks.
type SweepService struct {
	crowd         *CrowdService
	alternatives  *AlternativeService
	notifications *NotificationService
	subscriptions repository.SubscriptionRepository
	cfg           config.SweepConfig
	searchRadius  float64

	mu      sync.Mutex
	stop    chan struct{}
	running bool
}

func NewSweepService(
	crowd *CrowdService,
	alternatives *AlternativeService,
	notifications *NotificationService,
	subscriptions repository.SubscriptionRepository,
	cfg config.SweepConfig,
	searchRadiusMeters float64,
) *SweepService {
	return &SweepService{
		crowd:         crowd,
		alternatives:  alternatives,
		notifications: notifications,
		subscriptions: subscriptions,
		cfg:           cfg,
		searchRadius:  searchRadiusMeters,
	}
}

// Start launches the timer loop. Calling Start on a running sweep is a no-op.
func (s *SweepService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.stop = make(chan struct{})
	s.running = true

	go s.run(s.stop)
	log.Printf("[SWEEP] Started (scan every %v, retry every %v)", s.cfg.ScanInterval, s.cfg.RetryInterval)
}

// Stop signals the timer loop to exit.
func (s *SweepService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	close(s.stop)
	s.running = false
}

// Active reports whether the timer loop is running.
func (s *SweepService) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

func (s *SweepService) run(stop chan struct{}) {
	scanTicker := time.NewTicker(s.cfg.ScanInterval)
	defer scanTicker.Stop()
	retryTicker := time.NewTicker(s.cfg.RetryInterval)
	defer retryTicker.Stop()

	for {
		select {
		case <-scanTicker.C:
			s.RunScanOnce(context.Background())
		case <-retryTicker.C:
			s.RunRetryOnce(context.Background())
		case <-stop:
			return
		}
	}
}

// RunScanOnce performs one scan-and-alert pass: for every fresh overcrowded
// location, build an alert, attach alternatives when any exist, and push a
// notification to each subscriber.
func (s *SweepService) RunScanOnce(ctx context.Context) {
	overcrowded, err := s.crowd.ListOvercrowded(ctx)
	if err != nil {
		log.Printf("[SWEEP] Scan failed: %v", err)
		return
	}

	for _, snapshot := range overcrowded {
		alert := s.notifications.BuildCrowdAlert(snapshot)

		recommendation, err := s.alternatives.FindAlternatives(ctx, snapshot.LocationID, s.searchRadius)
		if err != nil {
			log.Printf("[SWEEP] Alternative search for %s failed: %v", snapshot.LocationID, err)
		} else if recommendation != nil && len(recommendation.Alternatives) > 0 {
			alert.AttachAlternatives(recommendation)
		}

		subscribers, err := s.subscriptions.SubscribersOf(ctx, snapshot.LocationID)
		if err != nil {
			log.Printf("[SWEEP] Subscriber lookup for %s failed: %v", snapshot.LocationID, err)
			continue
		}

		for _, userID := range subscribers {
			s.notifications.Send(ctx, userID, s.buildNotification(userID, snapshot, alert))
		}
	}
}

// RunRetryOnce performs one pending-queue retry pass.
func (s *SweepService) RunRetryOnce(ctx context.Context) {
	s.notifications.DrainQueue(ctx)
}

func (s *SweepService) buildNotification(userID string, snapshot *entities.CrowdSnapshot, alert *entities.CrowdAlert) *entities.Notification {
	nType := entities.NotificationCrowdAlert
	title := "Crowd alert"
	if alert.Alternatives != nil {
		nType = entities.NotificationAlternativeSuggestion
		title = "Crowd alert - alternatives nearby"
	}

	n := entities.NewNotification(userID, nType, title, alert.Message, alert.Timestamp)
	n.LocationID = snapshot.LocationID
	n.Data = alert
	return n
}
