package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string         `mapstructure:"port"`
	AIProvider   string         `mapstructure:"ai_provider"` // "gemini" or "openai"
	AIEndpoint   string         `mapstructure:"ai_endpoint"` // OpenAI-compatible base URL, optional
	Model        string         `mapstructure:"model"`
	GeminiAPIKey string         `mapstructure:"GEMINI_API_KEY"`
	OpenAIAPIKey string         `mapstructure:"OPENAI_API_KEY"`
	UploadDir    string         `mapstructure:"upload_dir"`
	Pipeline     PipelineConfig `mapstructure:"pipeline"`
}

// PipelineConfig holds the retrieval/chunking knobs that varied across
// deployments.
type PipelineConfig struct {
	ChunkSize            int     `mapstructure:"chunk_size"`
	OCRMinChars          int     `mapstructure:"ocr_min_chars"`
	VerbatimChunkLimit   int     `mapstructure:"verbatim_chunk_limit"`
	ComparisonChunkLimit int     `mapstructure:"comparison_chunk_limit"`
	MinContextChunks     int     `mapstructure:"min_context_chunks"`
	HistoryEntries       int     `mapstructure:"history_entries"`
	HistoryAnswerLimit   int     `mapstructure:"history_answer_limit"`
	RenderZoom           float64 `mapstructure:"render_zoom"`
	CompletionTimeoutSec int     `mapstructure:"completion_timeout_seconds"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetDefault("port", "5000")
	v.SetDefault("ai_provider", "gemini")
	v.SetDefault("model", "gemini-2.5-flash")
	v.SetDefault("upload_dir", "documents")
	v.SetDefault("pipeline.chunk_size", 500)
	v.SetDefault("pipeline.ocr_min_chars", 100)
	v.SetDefault("pipeline.verbatim_chunk_limit", 20)
	v.SetDefault("pipeline.comparison_chunk_limit", 30)
	v.SetDefault("pipeline.min_context_chunks", 0)
	v.SetDefault("pipeline.history_entries", 5)
	v.SetDefault("pipeline.history_answer_limit", 50)
	v.SetDefault("pipeline.render_zoom", 2.0)
	v.SetDefault("pipeline.completion_timeout_seconds", 60)

	v.AutomaticEnv()
	v.BindEnv("GEMINI_API_KEY")
	v.BindEnv("OPENAI_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
