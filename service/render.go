package service

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// PageRenderer rasterizes one PDF page to a PNG image.
type PageRenderer interface {
	RenderPage(ctx context.Context, path string, page int, zoom float64) ([]byte, error)
}

type popplerRenderer struct{}

// NewPopplerRenderer renders pages by shelling out to pdftoppm.
func NewPopplerRenderer() PageRenderer {
	return &popplerRenderer{}
}

func (r *popplerRenderer) RenderPage(ctx context.Context, path string, page int, zoom float64) ([]byte, error) {
	if page < 1 {
		return nil, fmt.Errorf("invalid page number %d", page)
	}
	tempDir, err := os.MkdirTemp("", "docqa-render-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	dpi := int(zoom * 72)
	convertCmd := exec.CommandContext(ctx, "pdftoppm",
		"-f", strconv.Itoa(page),
		"-l", strconv.Itoa(page),
		"-r", strconv.Itoa(dpi),
		"-png",
		path, filepath.Join(tempDir, "page"))
	if err := convertCmd.Run(); err != nil {
		return nil, fmt.Errorf("error converting page %d to image: %w", page, err)
	}

	pattern := filepath.Join(tempDir, "page-*.png")
	files, err := filepath.Glob(pattern)
	if err != nil || len(files) == 0 {
		return nil, fmt.Errorf("failed to read rendered image for page %d", page)
	}
	return os.ReadFile(files[0])
}
