package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	services "github.com/tieubaoca/docqa-be/service"
	"github.com/tieubaoca/docqa-be/types"
)

// Provider error text is truncated before it reaches the client.
const maxErrorLen = 200

type QueryHandler struct {
	queryService *services.QueryService
}

func NewQueryHandler(queryService *services.QueryService) *QueryHandler {
	return &QueryHandler{
		queryService: queryService,
	}
}

func (h *QueryHandler) HandleQuery(c *gin.Context) {
	var req types.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Question == "" {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.queryService.Answer(c.Request.Context(), req.Question, req.DocumentID)
	if err != nil {
		h.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *QueryHandler) sendError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoDocument):
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Please upload a PDF first."})
	case errors.Is(err, services.ErrStaleDocument):
		c.JSON(http.StatusConflict, types.ErrorResponse{Error: "Document has been replaced. Re-upload or query without document_id."})
	case errors.Is(err, services.ErrAIUnavailable):
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "AI client not initialized. Check API Key."})
	default:
		msg := err.Error()
		if len(msg) > maxErrorLen {
			msg = msg[:maxErrorLen] + "..."
		}
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: msg})
	}
}
