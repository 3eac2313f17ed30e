package analysis

import (
	"context"
	"strings"
	"testing"

	apperrors "github.com/meetscribe/meetscribe/errors"
	"github.com/meetscribe/meetscribe/pkg/ai"
)

type fakeGenerator struct {
	configured bool
	response   string
	err        error
	gotPrompt  string
}

func (f *fakeGenerator) Configured() bool { return f.configured }

func (f *fakeGenerator) GenerateJSON(ctx context.Context, prompt string, schema *ai.Schema) (string, error) {
	f.gotPrompt = prompt
	return f.response, f.err
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.gotPrompt = prompt
	return f.response, f.err
}

func TestAnalyze_Success(t *testing.T) {
	gen := &fakeGenerator{configured: true, response: validResponse}
	svc := NewService(gen, 0, nil)

	result, err := svc.Analyze(context.Background(), "Alice: let's start")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Title != "Q3 Planning" {
		t.Errorf("unexpected title %q", result.Title)
	}
	if !strings.Contains(gen.gotPrompt, "Alice: let's start") {
		t.Error("transcript should be embedded in the prompt")
	}
}

func TestAnalyze_FailsWhenUnconfigured(t *testing.T) {
	svc := NewService(&fakeGenerator{configured: false}, 0, nil)
	if _, err := svc.Analyze(context.Background(), "hello"); err == nil {
		t.Fatal("expected error when model is unconfigured")
	}
}

func TestAnalyze_RejectsEmptyTranscript(t *testing.T) {
	svc := NewService(&fakeGenerator{configured: true}, 0, nil)
	_, err := svc.Analyze(context.Background(), "")
	appErr, ok := err.(apperrors.AppError)
	if !ok || appErr.HTTPCode != 400 {
		t.Fatalf("expected 400 AppError, got %v", err)
	}
}

func TestAnalyze_RejectsOverlongTranscript(t *testing.T) {
	svc := NewService(&fakeGenerator{configured: true}, 10, nil)
	_, err := svc.Analyze(context.Background(), strings.Repeat("x", 11))
	appErr, ok := err.(apperrors.AppError)
	if !ok || appErr.HTTPCode != 400 {
		t.Fatalf("expected 400 AppError, got %v", err)
	}
}

func TestAnalyze_LengthGuardCountsRunesNotBytes(t *testing.T) {
	gen := &fakeGenerator{configured: true, response: validResponse}
	svc := NewService(gen, 5, nil)

	// Five runes, ten bytes. Must pass a five-character limit.
	if _, err := svc.Analyze(context.Background(), "ééééé"); err != nil {
		t.Fatalf("five-rune transcript rejected: %v", err)
	}
	if _, err := svc.Analyze(context.Background(), "éééééé"); err == nil {
		t.Fatal("six-rune transcript must be rejected")
	}
}

func TestSummarize_Success(t *testing.T) {
	gen := &fakeGenerator{configured: true, response: "A short recap."}
	svc := NewService(gen, 0, nil)

	summary, err := svc.Summarize(context.Background(), "long meeting notes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != "A short recap." {
		t.Errorf("unexpected summary %q", summary)
	}
	if !strings.Contains(gen.gotPrompt, "long meeting notes") {
		t.Error("text should be embedded in the prompt")
	}
}

func TestSummarize_RejectsEmptyText(t *testing.T) {
	svc := NewService(&fakeGenerator{configured: true}, 0, nil)
	_, err := svc.Summarize(context.Background(), "")
	appErr, ok := err.(apperrors.AppError)
	if !ok || appErr.HTTPCode != 400 {
		t.Fatalf("expected 400 AppError, got %v", err)
	}
}

func TestAnalyze_WrapsInvalidModelOutput(t *testing.T) {
	gen := &fakeGenerator{configured: true, response: `{"title":"","summary":"s","mom":[],"tasks":[],"confidence_level":1}`}
	svc := NewService(gen, 0, nil)
	_, err := svc.Analyze(context.Background(), "hello")
	appErr, ok := err.(apperrors.AppError)
	if !ok || appErr.Code != apperrors.ErrorCode_ANALYSIS_INVALID_RESULT {
		t.Fatalf("expected ANALYSIS_INVALID_RESULT, got %v", err)
	}
}
