package main

import (
	"log"
	"time"

	"assessment-service/internal/cache"
	"assessment-service/internal/config"
	"assessment-service/internal/db"
	"assessment-service/internal/event"
	"assessment-service/internal/handlers"
	"assessment-service/internal/repository"
	"assessment-service/internal/scoring"
	"assessment-service/internal/selection"
	"assessment-service/internal/service"
	"assessment-service/internal/telemetry"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	cfg := config.Load()
	if cfg.Mongo.URI == "" {
		log.Fatal("MONGO_URI is required")
	}
	db.InitMongo(cfg.Mongo.URI)

	// RabbitMQ event publisher
	var publisher *event.Publisher
	if cfg.Rabbit.URI != "" && cfg.Rabbit.Exchange != "" {
		var err error
		publisher, err = event.NewPublisher(cfg.Rabbit.URI, cfg.Rabbit.Exchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, session events will not be published")
	}

	// Redis report cache
	var reports cache.ReportCache
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		reports = cache.NewReportCache(client, time.Duration(cfg.Redis.ReportTTLMin)*time.Minute)
	} else {
		log.Println("Redis not configured, score reports served from Mongo only")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	database := db.Client.Database(cfg.Mongo.Database)

	// Questions
	questionRepo := repository.NewQuestionRepository(database)
	questionService := service.NewQuestionService(questionRepo)
	questionHandler := handlers.NewQuestionHandler(questionService)

	// Sessions
	sessionRepo := repository.NewSessionRepository(database)
	selector := selection.NewSelector(questionRepo, selection.DefaultConfig())
	scorer := scoring.NewEngine(scoring.ProfileFor(cfg.Server.Profile))
	monitor := telemetry.NewMonitor(telemetry.DefaultConfig())
	sessionService := service.NewSessionService(
		sessionRepo,
		questionRepo,
		selector,
		scorer,
		monitor,
		publisher,
		reports,
	)
	sessionHandler := handlers.NewSessionHandler(sessionService)

	api := r.Group("/api/v1")

	questions := api.Group("/questions")
	{
		questions.POST("/", questionHandler.CreateQuestion)
		questions.GET("/", questionHandler.ListQuestions)
		questions.GET("/:id", questionHandler.GetQuestion)
	}

	sessions := api.Group("/sessions")
	{
		sessions.POST("/", sessionHandler.CreateSession)
		sessions.POST("/:id/start", sessionHandler.StartSession)
		sessions.POST("/:id/answers", sessionHandler.SubmitAnswer)
		sessions.POST("/:id/submit", sessionHandler.SubmitSession)
		sessions.GET("/:id/report", sessionHandler.GetReport)
		sessions.POST("/:id/telemetry", sessionHandler.LogTelemetry)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Run(":" + cfg.Server.Port)
}
