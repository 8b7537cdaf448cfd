package service

import (
	"context"
	"errors"
)

var (
	// ErrAIUnavailable means no completion client was configured (missing
	// API key). Uploads still work; queries that need the model fail fast.
	ErrAIUnavailable = errors.New("ai client not initialized")
)

// GenerateRequest is a single completion call: a prompt, a fixed system
// instruction, and optionally a PNG image for vision requests (OCR fallback).
type GenerateRequest struct {
	Prompt            string
	SystemInstruction string
	ImagePNG          []byte
}

// AIService is the external text/vision completion collaborator. Calls are
// single-attempt; any error is fatal to the request that made it.
type AIService interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}
