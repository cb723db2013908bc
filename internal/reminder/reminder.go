package reminder

import (
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Notifier delivers a reminder about due cards to a user
type Notifier interface {
	SendReminder(userID int64, due int) error
}

// Recipients lists users who opted in to reminders
type Recipients interface {
	ListReminderUsers() ([]int64, error)
}

// DueCounter counts cards waiting for review
type DueCounter interface {
	DueCount(userID int64) (int, error)
}

// Scheduler runs the hourly reminder job
type Scheduler struct {
	scheduler  *gocron.Scheduler
	recipients Recipients
	due        DueCounter
	notifier   Notifier
	logger     *zap.Logger
	startHour  int
	endHour    int
	now        func() time.Time

	mu       sync.Mutex
	lastSent map[int64]string
}

// New creates a reminder scheduler active between startHour and endHour (UTC, inclusive)
func New(recipients Recipients, due DueCounter, notifier Notifier, startHour, endHour int, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduler:  gocron.NewScheduler(time.UTC),
		recipients: recipients,
		due:        due,
		notifier:   notifier,
		logger:     logger,
		startHour:  startHour,
		endHour:    endHour,
		now:        time.Now,
		lastSent:   make(map[int64]string),
	}
}

// Start schedules the hourly check without blocking
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(1).Hour().Do(s.Run); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates the scheduled job
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) inWindow(hour int) bool {
	return hour >= s.startHour && hour <= s.endHour
}

// Run sends at most one reminder per user per day, and only for users with due cards
func (s *Scheduler) Run() {
	now := s.now().UTC()
	today := now.Format(time.DateOnly)
	s.forgetBefore(today)

	if !s.inWindow(now.Hour()) {
		s.logger.Debug("Outside reminder hours, skipping",
			zap.Int("hour", now.Hour()),
			zap.Int("start_hour", s.startHour),
			zap.Int("end_hour", s.endHour))
		return
	}

	users, err := s.recipients.ListReminderUsers()
	if err != nil {
		s.logger.Error("Failed to list reminder users", zap.Error(err))
		return
	}

	sent := 0
	for _, userID := range users {
		if s.sentOn(userID) == today {
			continue
		}

		count, err := s.due.DueCount(userID)
		if err != nil {
			s.logger.Error("Failed to count due phrases", zap.Int64("user_id", userID), zap.Error(err))
			continue
		}
		if count == 0 {
			continue
		}

		if err := s.notifier.SendReminder(userID, count); err != nil {
			s.logger.Error("Failed to send reminder", zap.Int64("user_id", userID), zap.Error(err))
			continue
		}
		s.markSent(userID, today)
		sent++
	}

	s.logger.Info("Reminder run finished", zap.Int("users", len(users)), zap.Int("sent", sent))
}

func (s *Scheduler) sentOn(userID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSent[userID]
}

func (s *Scheduler) markSent(userID int64, day string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSent[userID] = day
}

// forgetBefore drops send records from earlier days so the map holds at most one day of users
func (s *Scheduler) forgetBefore(today string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, day := range s.lastSent {
		if day != today {
			delete(s.lastSent, userID)
		}
	}
}
