package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tieubaoca/docqa-be/store"
	"github.com/tieubaoca/docqa-be/types"
	"github.com/tieubaoca/docqa-be/utils"
)

// ErrUnsupportedFile marks an upload with a file type other than PDF; it is
// an input error, not a processing failure.
var ErrUnsupportedFile = errors.New("unsupported file type")

// FileService saves uploads and runs them through the chunker. The store is
// only touched after the whole document processed cleanly, so a failed
// upload leaves the previous document intact.
type FileService struct {
	uploadDir  string
	pdfService *PDFService
	chunkStore *store.ChunkStore
	history    *store.History
}

func NewFileService(
	uploadDir string,
	pdfService *PDFService,
	chunkStore *store.ChunkStore,
	history *store.History,
) (*FileService, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &FileService{
		uploadDir:  uploadDir,
		pdfService: pdfService,
		chunkStore: chunkStore,
		history:    history,
	}, nil
}

// UploadPrimary ingests the main knowledge document, replacing the store and
// clearing the query history. Returns chunk count and the new document id.
func (s *FileService) UploadPrimary(ctx context.Context, file *multipart.FileHeader) (int, string, error) {
	path, err := s.saveFile(file)
	if err != nil {
		return 0, "", err
	}

	chunks, _, err := s.pdfService.ProcessPDF(ctx, path, types.SourceNotes)
	if err != nil {
		return 0, "", err
	}

	docID := s.chunkStore.ReplacePrimary(chunks, path)
	s.history.Clear()
	log.Info().Int("chunks", len(chunks)).Str("document_id", docID).Msg("primary document indexed")
	return len(chunks), docID, nil
}

// UploadSecondary ingests a question paper, appending its chunks to the
// current store.
func (s *FileService) UploadSecondary(ctx context.Context, file *multipart.FileHeader) (int, string, error) {
	path, err := s.saveFile(file)
	if err != nil {
		return 0, "", err
	}

	chunks, fullText, err := s.pdfService.ProcessPDF(ctx, path, types.SourcePaper)
	if err != nil {
		return 0, "", err
	}

	docID := s.chunkStore.AppendSecondary(chunks, path, fullText)
	log.Info().Int("chunks", len(chunks)).Str("document_id", docID).Msg("question paper indexed")
	return len(chunks), docID, nil
}

func (s *FileService) saveFile(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFile, ext)
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	filename := utils.TimestampedFilename(file.Filename)
	path := filepath.Join(s.uploadDir, filename)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return "", err
	}
	return path, nil
}
