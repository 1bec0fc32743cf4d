package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ingresure/ingresure-api/internal/ai"
	"github.com/ingresure/ingresure-api/internal/config"
	"github.com/ingresure/ingresure-api/internal/engine"
	"github.com/ingresure/ingresure-api/internal/enrichment"
	"github.com/ingresure/ingresure-api/internal/foodapi"
	"github.com/ingresure/ingresure-api/internal/handlers"
	"github.com/ingresure/ingresure-api/internal/logger"
	"github.com/ingresure/ingresure-api/internal/middleware"
	"github.com/ingresure/ingresure-api/internal/ontology"
	"github.com/ingresure/ingresure-api/internal/repository"
	"github.com/ingresure/ingresure-api/internal/resolver"
	"github.com/ingresure/ingresure-api/internal/restrictions"
	"github.com/ingresure/ingresure-api/internal/service"
	"github.com/ingresure/ingresure-api/internal/ws"
)

// SetupRouter sets up the Gin router.
func SetupRouter(cfg *config.Config) *gin.Engine {
	// Create default Gin router
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	// Add request ID middleware for request correlation
	r.Use(logger.RequestIDMiddleware())
	r.Use(middleware.SecurityHeaders())

	// Health check
	r.GET("/", handlers.Health)

	// Data layer: static + dynamic ontology, restriction rules, the
	// unknown-ingredient log, and the external food APIs.
	env := cfg.EnvVars
	registry := ontology.NewRegistry(env.OntologyPath, env.DynamicOntologyPath)
	restrictionReg := restrictions.NewRegistry(env.RestrictionsPath)
	unknown := enrichment.NewUnknownLog(env.UnknownLogPath)
	dynamic := enrichment.NewDynamicOntology(env.DynamicOntologyPath)

	var usda, off foodapi.Source
	if env.USDAFDCAPIKey != "" {
		usda = foodapi.NewUSDAClient(env.USDAFDCAPIKey)
	}
	if env.OpenFoodFactsEnabled {
		off = foodapi.NewOFFClient()
	}
	var fetcher *foodapi.Fetcher
	if usda != nil || off != nil {
		fetcher = foodapi.NewFetcher(usda, off)
	}

	res := resolver.New(registry, fetcher, unknown, dynamic)
	eng := engine.New(res, restrictionReg)
	// The legacy evaluation path is gone; the flags remain accepted so
	// existing deployments keep their env files, and get logged for
	// operational visibility.
	logger.Get().Info("engine flags",
		zap.Bool("use_new_engine", env.UseNewEngine),
		zap.Bool("shadow_mode", env.ShadowMode))

	// AI provider: Ollama is the default; hosted providers take over
	// when their keys are configured.
	var textProvider ai.TextProvider
	switch {
	case env.AnthropicAPIKey != "":
		textProvider = ai.NewAnthropicProvider(env.AnthropicAPIKey, cfg.Prompts)
	case env.OpenAIAPIKey != "":
		textProvider = ai.NewOpenAIProvider(env.OpenAIAPIKey, cfg.Prompts)
	default:
		textProvider = ai.NewOllamaProvider(env.OllamaAPIURL, env.OllamaModel,
			env.LLMIntentTimeout, env.LLMResponseTimeout, cfg.Prompts)
	}

	profileRepo := repository.NewFileProfileRepo(env.ProfilesPath)
	chatService := service.NewChatService(cfg, profileRepo, eng, textProvider)
	chatHandler := handlers.NewChatHandler(chatService)
	scanHandler := handlers.NewScanHandler(service.NewScanService(eng))
	profileHandler := handlers.NewProfileHandler(service.NewProfileService(profileRepo))

	api := r.Group("/v1")
	{
		api.Use(middleware.RateLimitByIP(20, 5*time.Minute, 15*time.Minute))

		// Chat
		api.POST("/chat/grocery", chatHandler.Chat)

		// Scan + verification
		api.POST("/scan", scanHandler.Scan)
		api.POST("/verify-menu-item", scanHandler.VerifyMenuItem)

		// Profiles get a tighter per-user budget on top of the IP limit.
		profileLimit := middleware.RateLimitByUserID(5, time.Minute, 10*time.Minute)
		api.GET("/profile/:user_id", profileLimit, profileHandler.GetProfile)
		api.POST("/profile", profileLimit, profileHandler.UpdateProfile)
	}

	// WebSocket chat streaming
	hub := ws.NewHub()
	go hub.Run()
	chatSessionHandler := ws.NewChatSessionHandler(hub, chatService)
	r.GET("/v1/ws/chat", chatSessionHandler.HandleChatSession)

	return r
}
