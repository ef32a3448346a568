package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/brandonlacoste9-tech/Koloni/application/services"
	"github.com/brandonlacoste9-tech/Koloni/config"
	"github.com/brandonlacoste9-tech/Koloni/infrastructure/adapters"
	"github.com/brandonlacoste9-tech/Koloni/infrastructure/gin_interface/controllers"
	"github.com/brandonlacoste9-tech/Koloni/middleware"
	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	serverConfig, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get server config")
	}

	redisConfig, err := config.GetRedisConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get redis config")
	}

	scenePlannerConfig, err := config.GetScenePlannerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get scene planner config")
	}

	workflowPlannerConfig, err := config.GetWorkflowPlannerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get workflow planner config")
	}

	engineConfig, err := config.GetGenerationEngineConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get generation engine config")
	}

	speechConfig, err := config.GetSpeechSynthesizerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get speech synthesizer config")
	}

	authConfig, err := config.GetAuthConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get auth config")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisConfig.Addr,
		Password: redisConfig.Password,
		DB:       redisConfig.DB,
	})

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 10*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		log.Fatal().Err(err).Msg("Failed to connect to redis")
	}
	cancelPing()

	jobStore := adapters.NewRedisJobStore(zeroLogger, rdb)

	fetcher := adapters.NewContentFetcher(zeroLogger, 60*time.Second)

	scenePlanner := adapters.NewScenePlanner(fetcher, scenePlannerConfig, zeroLogger)
	workflowPlanner := adapters.NewWorkflowPlanner(fetcher, workflowPlannerConfig, zeroLogger)
	generationEngine := adapters.NewGenerationEngine(fetcher, engineConfig, zeroLogger)
	speechSynthesizer := adapters.NewSpeechSynthesizer(fetcher, speechConfig, zeroLogger)

	serviceHealth := adapters.NewServiceHealthChecker(zeroLogger, fetcher, workerPool, map[string]string{
		"scene-planner":      scenePlannerConfig.ApiUrl,
		"workflow-planner":   workflowPlannerConfig.ApiUrl,
		"generation-engine":  engineConfig.ApiUrl,
		"speech-synthesizer": speechConfig.ApiUrl,
	})

	pipelineRunner := services.NewPipelineRunner(zeroLogger, jobStore,
		scenePlanner, workflowPlanner, generationEngine, speechSynthesizer,
		services.PipelineOptions{
			PollInterval:    engineConfig.PollInterval,
			MaxPollAttempts: engineConfig.MaxPollAttempts,
			VideoType:       workflowPlannerConfig.VideoType,
			DefaultLanguage: speechConfig.DefaultLanguage,
			DefaultEmotion:  speechConfig.DefaultEmotion,
		})

	jobSubmitter := services.NewJobSubmitter(zeroLogger, jobStore)
	statusProjector := services.NewStatusProjector(zeroLogger, jobStore)
	videoExporter := services.NewVideoExporter(zeroLogger, jobStore)

	dispatcher := services.NewJobDispatcher(zeroLogger, workerPool, jobStore,
		pipelineRunner, serverConfig.WorkerCount, serverConfig.JobTimeout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := dispatcher.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start job dispatcher")
	}

	videoJobsController := controllers.NewVideoJobsController(zeroLogger,
		jobSubmitter, statusProjector, videoExporter, serviceHealth)

	router := gin.Default()

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	authHandler, err := middleware.NewAuthHandler(authConfig.JwksUrl)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth handler!")
	}

	router.Use(authHandler.AuthMiddleware())

	videoJobsController.RegisterRoutes(router)

	server := &http.Server{
		Addr:    ":" + serverConfig.Port,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zeroLogger.Error(err, "server shutdown failed")
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
