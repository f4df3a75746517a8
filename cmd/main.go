package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tdhoang/mockmate/config"
	"github.com/tdhoang/mockmate/database"
	"github.com/tdhoang/mockmate/internal/callsession"
	"github.com/tdhoang/mockmate/internal/controller"
	"github.com/tdhoang/mockmate/internal/logger"
	"github.com/tdhoang/mockmate/internal/middleware"
	"github.com/tdhoang/mockmate/internal/model"
	"github.com/tdhoang/mockmate/internal/repository"
	"github.com/tdhoang/mockmate/internal/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewInterviewRepository,
			repository.NewFeedbackRepository,
		),

		// Services layer. The Gemini service backs both AI collaborator
		// roles: free-text generation and transcript scoring.
		fx.Provide(
			service.NewGeminiService,
			func(g service.GeminiService) service.TextGenerator { return g },
			func(g service.GeminiService) service.TranscriptScorer { return g },
			service.NewAuthService,
			service.NewInterviewService,
			service.NewFeedbackService,
			service.NewTechstackService,
		),

		// Call sessions: the Vapi transport plus the in-memory registry that
		// owns live sessions and hands finished transcripts to the feedback
		// deriver.
		fx.Provide(
			callsession.NewVapiTransportFactory,
			func(fs service.FeedbackService) callsession.FeedbackDeriver { return fs },
			func(lc fx.Lifecycle, factory callsession.TransportFactory, deriver callsession.FeedbackDeriver, cfg *config.Config) *callsession.Registry {
				registry := callsession.NewRegistry(factory, deriver, cfg.AITimeout)
				lc.Append(fx.Hook{
					OnStop: func(ctx context.Context) error {
						registry.Close()
						return nil
					},
				})
				return registry
			},
		),

		// API controllers layer
		fx.Provide(
			middleware.NewAuthMiddleware,
			controller.NewAuthController,
			controller.NewInterviewController,
			controller.NewFeedbackController,
			controller.NewTechstackController,
			controller.NewCallController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Route gin's request log through zerolog.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Vapi-Secret"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authMW *middleware.AuthMiddleware,
	authCtrl *controller.AuthController,
	interviewCtrl *controller.InterviewController,
	feedbackCtrl *controller.FeedbackController,
	techstackCtrl *controller.TechstackController,
	callCtrl *controller.CallController,
) {
	api := router.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/signup", authCtrl.SignUp)
		authGroup.POST("/signin", authCtrl.SignIn)
		authGroup.POST("/signout", authCtrl.SignOut)
		authGroup.GET("/me", authMW.RequireAuth(), authCtrl.Me)

		techGroup := api.Group("/techstack")
		techGroup.GET("/suggestions", authMW.RequireAuth(), techstackCtrl.Suggestions)
		techGroup.GET("/logos", techstackCtrl.Logos)

		protected := api.Group("", authMW.RequireAuth())
		{
			protected.POST("/interviews", interviewCtrl.Create)
			protected.GET("/interviews", interviewCtrl.ListMine)
			protected.GET("/interviews/latest", interviewCtrl.ListLatest)
			protected.GET("/interviews/:interview_id", interviewCtrl.Get)
			protected.GET("/interviews/:interview_id/feedback", feedbackCtrl.GetByInterview)

			protected.POST("/calls", callCtrl.Start)
			protected.POST("/calls/:call_id/stop", callCtrl.Stop)
			protected.GET("/calls/:call_id", callCtrl.Get)
		}

		// The transport authenticates with the webhook secret, not a session.
		api.POST("/calls/:call_id/events", callCtrl.Events)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Mock interview API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Interview{},
		&model.Feedback{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
