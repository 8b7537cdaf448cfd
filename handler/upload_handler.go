package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	services "github.com/tieubaoca/docqa-be/service"
	"github.com/tieubaoca/docqa-be/types"
)

type UploadHandler struct {
	fileService *services.FileService
}

func NewUploadHandler(fileService *services.FileService) *UploadHandler {
	return &UploadHandler{
		fileService: fileService,
	}
}

// UploadNotesHandler ingests the primary document. The previous document,
// its chunks and the query history are replaced on success and untouched on
// failure.
func (h *UploadHandler) UploadNotesHandler(c *gin.Context) {
	file, err := c.FormFile("pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "No file part"})
		return
	}

	count, docID, err := h.fileService.UploadPrimary(c.Request.Context(), file)
	if err != nil {
		h.sendUploadError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.UploadResponse{
		Message:     fmt.Sprintf("PDF processed successfully. %d chunks indexed.", count),
		ChunksCount: count,
		DocumentID:  docID,
	})
}

// UploadPaperHandler ingests a question paper; its chunks are appended
// without clearing the notes.
func (h *UploadHandler) UploadPaperHandler(c *gin.Context) {
	file, err := c.FormFile("pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "No file part"})
		return
	}

	count, docID, err := h.fileService.UploadSecondary(c.Request.Context(), file)
	if err != nil {
		h.sendUploadError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.UploadResponse{
		Message:     fmt.Sprintf("Question paper processed successfully. %d chunks indexed.", count),
		ChunksCount: count,
		DocumentID:  docID,
	})
}

// sendUploadError distinguishes bad input from processing failures: an
// unsupported file type is the caller's mistake, everything else is a 500.
func (h *UploadHandler) sendUploadError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrUnsupportedFile) {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to process PDF: " + err.Error()})
}
