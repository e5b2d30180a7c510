package main

import (
	"log"

	"github.com/fardhanrasya/gamify-api/internal/config"
	"github.com/fardhanrasya/gamify-api/internal/model"
	"github.com/fardhanrasya/gamify-api/internal/scheduler"
	"github.com/fardhanrasya/gamify-api/internal/server"
	"github.com/fardhanrasya/gamify-api/pkg/database"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		log.Println("REDIS_URL not set; rate limiting disabled, processor pause is per-instance")
	}

	srv := server.NewServer(db, redisClient, cfg)

	jobs := scheduler.New(srv.Leaderboard, srv.Rewards)
	if err := jobs.Register(cfg.RankRecalcCron, cfg.RewardSweepCron); err != nil {
		log.Fatalf("failed to register scheduled jobs: %v", err)
	}
	jobs.Start()
	defer jobs.Stop()

	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Player{},
		&model.Game{},
		&model.Mission{},
		&model.Task{},
		&model.Event{},
		&model.EventLog{},
		&model.TaskProgress{},
		&model.MissionProgress{},
		&model.Reward{},
		&model.PlayerReward{},
		&model.LeaderboardEntry{},
	)
}
