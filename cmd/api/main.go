package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"papas_go_backend/internal/ai"
	"papas_go_backend/internal/api"
	"papas_go_backend/internal/auth"
	"papas_go_backend/internal/broker"
	"papas_go_backend/internal/config"
	"papas_go_backend/internal/database"
	"papas_go_backend/internal/services"
	"papas_go_backend/internal/wsocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		logger.Fatal().Msg("JWT_SECRET is not set in the environment")
	}

	db, err := database.Init(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize database")
	}

	ctx := context.Background()

	// Provider chain: priority is fixed here, at construction, from
	// configuration. Transcription always belongs to the Grok adapter.
	grok := ai.NewGrokProvider(cfg.GrokAPIKey, cfg.GrokBaseURL, logger)

	genaiClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create GenAI client")
	}
	defer genaiClient.Close()
	gemini := ai.NewGeminiProvider(genaiClient, logger)

	liveChain := []ai.Provider{grok, gemini}
	if cfg.UseGemini {
		liveChain = []ai.Provider{gemini, grok}
	}

	var mock ai.Provider
	if cfg.UseMockResponses {
		logger.Info().Msg("Mock responses enabled as last fallback tier")
		mock = ai.NewMockProvider()
	}

	msgBroker := broker.NewBroker()

	chatStore := services.NewGormChatStore(db)
	schoolService := services.NewSchoolService(db)
	documentService := services.NewDocumentService(db)
	userService := services.NewUserService(db)
	assistantService := services.NewAssistantService(
		chatStore,
		documentService,
		liveChain,
		grok,
		mock,
		msgBroker,
		logger,
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r, assistantService, schoolService, documentService, userService)
	auth.SetupRoutes(r, userService, cfg.JWTSecret)

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true // TODO: restrict to cfg.AllowedOrigins once the mobile client sends an Origin header
		},
	}
	wsHandler := wsocket.NewHandler(assistantService, msgBroker, upgrader, logger)
	r.GET("/ws", func(c *gin.Context) {
		wsHandler.HandleChat(c.Writer, c.Request)
	})

	logger.Info().Str("port", cfg.Port).Msg("Server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}
