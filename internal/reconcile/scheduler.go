package reconcile

import (
	"context"
	"time"

	"github.com/pocketplan/backend/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Scheduler periodically runs the due-check for every user so that the
// monthly reset happens without manual intervention. Process itself skips
// budgets that were already reset this month, so a short interval only
// costs queries, never duplicate transfers.
type Scheduler struct {
	db       *gorm.DB
	interval time.Duration
}

func NewScheduler(db *gorm.DB, interval time.Duration) *Scheduler {
	return &Scheduler{
		db:       db,
		interval: interval,
	}
}

// Run blocks until the context is canceled. One check runs immediately so
// that a restart at a month boundary does not wait a full interval.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick(time.Now())

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("reset scheduler stopped")
			return
		case now := <-ticker.C:
			s.tick(now)
		}
	}
}

func (s *Scheduler) tick(now time.Time) {
	var users []models.User
	err := s.db.Find(&users).Error
	if err != nil {
		log.Error().Err(err).Msg("reset scheduler could not list users")
		return
	}

	for _, user := range users {
		_, err := Process(s.db, user, now)
		if err != nil {
			log.Error().Err(err).Str("user", user.ID.String()).Msg("scheduled monthly reset failed")
		}
	}
}
