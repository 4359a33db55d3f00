package cron

import (
	"log"

	"auth/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Scheduler periodically prunes expired refresh tokens.
type Scheduler struct {
	cron *cron.Cron
	db   *gorm.DB
}

func NewScheduler(db *gorm.DB) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		db:   db,
	}
}

// Start registers and starts the cleanup job, running at minute 0 of every
// hour.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 * * * *", s.runCleanup); err != nil {
		log.Printf("Error scheduling token cleanup job: %v", err)
		return err
	}

	s.cron.Start()
	return nil
}

// Stop shuts the scheduler down; running jobs finish first.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runCleanup() {
	if err := utils.CleanExpiredTokens(s.db); err != nil {
		log.Printf("Error cleaning expired refresh tokens: %v", err)
		return
	}
	log.Println("Expired refresh tokens cleaned")
}

// RunNow triggers the cleanup once, outside the schedule.
func (s *Scheduler) RunNow() {
	s.runCleanup()
}
