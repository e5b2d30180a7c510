package server

import (
	"strings"
	"time"

	"github.com/fardhanrasya/gamify-api/internal/config"
	"github.com/fardhanrasya/gamify-api/internal/handler"
	"github.com/fardhanrasya/gamify-api/internal/middleware"
	"github.com/fardhanrasya/gamify-api/internal/repository"
	"github.com/fardhanrasya/gamify-api/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client

	Leaderboard service.LeaderboardService
	Rewards     service.RewardService
}

func NewServer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Server {
	playerRepo := repository.NewPlayerRepository(db)
	gameRepo := repository.NewGameRepository(db)
	missionRepo := repository.NewMissionRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	eventRepo := repository.NewEventRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	rewardRepo := repository.NewRewardRepository(db)
	boardRepo := repository.NewLeaderboardRepository(db)

	toggle := service.NewProcessorSwitch(redisClient)
	processor := service.NewEventProcessor(db, toggle)

	eventSvc := service.NewEventService(eventRepo)
	gameSvc := service.NewGameService(gameRepo)
	missionSvc := service.NewMissionService(missionRepo, progressRepo, playerRepo)
	taskSvc := service.NewTaskService(db, taskRepo, missionRepo, playerRepo, progressRepo)
	rewardSvc := service.NewRewardService(db, rewardRepo, missionRepo, playerRepo)
	boardSvc := service.NewLeaderboardService(boardRepo, playerRepo)

	eventHandler := handler.NewEventHandler(eventSvc, processor, redisClient, cfg.EventRateLimit)
	missionHandler := handler.NewMissionHandler(missionSvc)
	taskHandler := handler.NewTaskHandler(taskSvc)
	rewardHandler := handler.NewRewardHandler(rewardSvc)
	boardHandler := handler.NewLeaderboardHandler(boardSvc)
	adminHandler := handler.NewAdminHandler(gameSvc, missionSvc, taskSvc, rewardSvc, playerRepo, toggle)

	router := gin.New()
	setupCORS(router, cfg.AllowedOrigins)
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	api := router.Group("/api")
	{
		api.POST("/events", eventHandler.SubmitEvent)
		api.GET("/events", eventHandler.ListEvents)
		api.GET("/events/:id", eventHandler.GetEvent)
		api.POST("/events/register", eventHandler.RegisterEvent)

		api.GET("/missions", missionHandler.ListMissions)
		api.GET("/missions/:id", missionHandler.GetMission)

		api.GET("/tasks", taskHandler.ListTasks)
		api.PATCH("/tasks/:id/skip", taskHandler.SkipTask)
		api.POST("/tasks/:id/complete", taskHandler.CompleteTask)

		api.GET("/rewards", rewardHandler.ListRewards)
		api.POST("/rewards/:id/claim", rewardHandler.ClaimReward)

		api.GET("/leaderboard", boardHandler.GetLeaderboard)
		api.POST("/leaderboard/recalculate", boardHandler.Recalculate)

		admin := api.Group("/admin")
		admin.Use(middleware.RequireAPIKey(cfg.AdminAPIKey))
		{
			admin.POST("/games", adminHandler.CreateGame)
			admin.GET("/games", adminHandler.ListGames)
			admin.PUT("/games/:id", adminHandler.UpdateGame)
			admin.DELETE("/games/:id", adminHandler.DeleteGame)
			admin.POST("/missions", adminHandler.CreateMission)
			admin.PUT("/missions/:id", adminHandler.UpdateMission)
			admin.DELETE("/missions/:id", adminHandler.DeleteMission)
			admin.POST("/missions/:id/grants", adminHandler.GrantMissionRewards)
			admin.POST("/tasks", adminHandler.CreateTask)
			admin.PUT("/tasks/:id", adminHandler.UpdateTask)
			admin.DELETE("/tasks/:id", adminHandler.DeleteTask)
			admin.POST("/rewards", adminHandler.CreateReward)
			admin.PUT("/rewards/:id", adminHandler.UpdateReward)
			admin.DELETE("/rewards/:id", adminHandler.DeleteReward)
			admin.GET("/players/:externalId", adminHandler.GetPlayer)
			admin.POST("/processor/pause", adminHandler.PauseProcessor)
			admin.POST("/processor/resume", adminHandler.ResumeProcessor)
		}
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
		Leaderboard: boardSvc,
		Rewards:     rewardSvc,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-API-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
