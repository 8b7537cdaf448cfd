/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tieubaoca/docqa-be/config"
	"github.com/tieubaoca/docqa-be/handler"
	"github.com/tieubaoca/docqa-be/service"
	"github.com/tieubaoca/docqa-be/store"
	"github.com/tieubaoca/docqa-be/types"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the document QA server",
	Long:  `Starts the HTTP server handling PDF uploads and document queries`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		aiService := buildAIService(cfg)
		if aiService == nil {
			log.Warn().Msg("no AI credential configured, queries will fail until one is set")
		}

		chunkStore := store.NewChunkStore()
		history := store.NewHistory(cfg.Pipeline.HistoryEntries, cfg.Pipeline.HistoryAnswerLimit)
		renderer := service.NewPopplerRenderer()

		pdfService := service.NewPDFService(
			types.DocumentServiceConfig{
				ChunkSize:   cfg.Pipeline.ChunkSize,
				OCRMinChars: cfg.Pipeline.OCRMinChars,
			},
			service.NewPDFExtractor(),
			renderer,
			aiService,
		)
		fileService, err := service.NewFileService(cfg.UploadDir, pdfService, chunkStore, history)
		if err != nil {
			return err
		}

		selector := service.NewKeywordSelector(
			cfg.Pipeline.VerbatimChunkLimit,
			cfg.Pipeline.ComparisonChunkLimit,
			cfg.Pipeline.MinContextChunks,
		)
		queryService := service.NewQueryService(chunkStore, history, aiService, selector, renderer, service.QueryConfig{
			HistoryEntries:    cfg.Pipeline.HistoryEntries,
			RenderZoom:        cfg.Pipeline.RenderZoom,
			CompletionTimeout: time.Duration(cfg.Pipeline.CompletionTimeoutSec) * time.Second,
		})

		corsHandler := handler.NewCorsHandler()
		uploadHandler := handler.NewUploadHandler(fileService)
		queryHandler := handler.NewQueryHandler(queryService)

		router := gin.New()
		router.Use(gin.Logger())
		router.Use(corsHandler.CorsMiddleware)
		// Unhandled panics become a generic 500 naming only the value's type.
		router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
			log.Error().Interface("panic", recovered).Msg("request handler panicked")
			c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{
				Error: fmt.Sprintf("Internal server error (%T)", recovered),
			})
		}))

		router.POST("/upload", uploadHandler.UploadNotesHandler)
		router.POST("/upload-notes", uploadHandler.UploadNotesHandler)
		router.POST("/upload-paper", uploadHandler.UploadPaperHandler)
		router.POST("/query", queryHandler.HandleQuery)

		log.Info().Str("port", cfg.Port).Msg("starting server")
		return router.Run(":" + cfg.Port)
	},
}

func buildAIService(cfg *config.Config) service.AIService {
	switch cfg.AIProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil
		}
		return service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model)
	default:
		if cfg.GeminiAPIKey == "" {
			return nil
		}
		// The key may be a comma-separated list; extra keys are rotation
		// fallbacks.
		keys := strings.Split(cfg.GeminiAPIKey, ",")
		for i := range keys {
			keys[i] = strings.TrimSpace(keys[i])
		}
		gemini, err := service.NewGeminiService(keys, cfg.Model)
		if err != nil {
			log.Error().Err(err).Msg("failed to initialize Gemini client")
			return nil
		}
		return gemini
	}
}

func init() {
	rootCmd.AddCommand(startServerCmd)
}
