package service

import (
	"context"
	"fmt"
)

type fakeAI struct {
	response string
	err      error
	requests []GenerateRequest
}

func (f *fakeAI) Generate(_ context.Context, req GenerateRequest) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type fakeRenderer struct {
	png   []byte
	err   error
	calls []int
}

func (f *fakeRenderer) RenderPage(_ context.Context, _ string, page int, _ float64) ([]byte, error) {
	f.calls = append(f.calls, page)
	if f.err != nil {
		return nil, f.err
	}
	return f.png, nil
}

// fakeExtractor serves fixed per-page texts regardless of path.
type fakeExtractor struct {
	pages []string
	err   error
}

func (f *fakeExtractor) PageCount(string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.pages), nil
}

func (f *fakeExtractor) ExtractPage(_ string, page int) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if page < 1 || page > len(f.pages) {
		return "", fmt.Errorf("page %d out of range", page)
	}
	return f.pages[page-1], nil
}
