package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ============================================================
// Reservation sweeper: completes ended rentals and takes
// started ones off the available list
// ============================================================

// DefaultSweepSchedule runs the sweep shortly after midnight
const DefaultSweepSchedule = "5 0 * * *"

// ReservationSweeper runs the reservation lifecycle jobs on a cron schedule
type ReservationSweeper struct {
	reservations *ReservationService
	cron         *cron.Cron
	now          func() time.Time
	timeout      time.Duration
}

// NewReservationSweeper creates a sweeper; an empty schedule uses DefaultSweepSchedule
func NewReservationSweeper(reservations *ReservationService, schedule string) (*ReservationSweeper, error) {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}

	s := &ReservationSweeper{
		reservations: reservations,
		cron:         cron.New(cron.WithLocation(time.UTC)),
		now:          time.Now,
		timeout:      time.Minute,
	}

	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start runs one sweep immediately and then follows the schedule
func (s *ReservationSweeper) Start() {
	logrus.Info("🚀 Reservation sweeper started")
	s.run()
	s.cron.Start()
}

// Stop waits for a running sweep to finish
func (s *ReservationSweeper) Stop() {
	<-s.cron.Stop().Done()
	logrus.Info("🛑 Reservation sweeper stopped")
}

func (s *ReservationSweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, _, err := s.Sweep(ctx); err != nil {
		logrus.WithError(err).Error("❌ Reservation sweep failed")
	}
}

// Sweep completes ended reservations and then activates started ones for today
func (s *ReservationSweeper) Sweep(ctx context.Context) (completed, activated int, err error) {
	today := s.now()

	completed, err = s.reservations.CompleteEndedReservations(ctx, today)
	if err != nil {
		return completed, 0, fmt.Errorf("complete ended reservations: %w", err)
	}

	activated, err = s.reservations.ActivateStartedReservations(ctx, today)
	if err != nil {
		return completed, activated, fmt.Errorf("activate started reservations: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"completed": completed,
		"activated": activated,
	}).Debug("Reservation sweep finished")
	return completed, activated, nil
}
