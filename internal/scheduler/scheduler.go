package scheduler

import (
	"context"
	"log"

	"github.com/fardhanrasya/gamify-api/internal/service"
	"github.com/robfig/cron/v3"
)

// Scheduler runs the periodic maintenance passes: the leaderboard rank
// recalculation and the reward expiry sweep.
type Scheduler struct {
	cron    *cron.Cron
	boards  service.LeaderboardService
	rewards service.RewardService
}

func New(boards service.LeaderboardService, rewards service.RewardService) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		boards:  boards,
		rewards: rewards,
	}
}

func (s *Scheduler) Register(rankSpec, sweepSpec string) error {
	_, err := s.cron.AddFunc(rankSpec, func() {
		if _, err := s.boards.RecalculateRankings(context.Background()); err != nil {
			log.Printf("rank recalculation job failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	_, err = s.cron.AddFunc(sweepSpec, func() {
		if _, err := s.rewards.ExpireDueRewards(context.Background()); err != nil {
			log.Printf("reward expiry sweep failed: %v", err)
		}
	})
	return err
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("scheduler stopped")
}
