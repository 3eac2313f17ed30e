package analysis

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/meetscribe/meetscribe/errors"
	"github.com/meetscribe/meetscribe/internal/domain/entities"
	"github.com/meetscribe/meetscribe/pkg/ai"
)

// Generator abstracts the LLM calls
type Generator interface {
	Configured() bool
	GenerateJSON(ctx context.Context, prompt string, schema *ai.Schema) (string, error)
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Service runs transcript analysis through the generative model
type Service struct {
	generator Generator
	parser    *Parser
	maxChars  int
	logger    *zap.Logger
}

// NewService creates an analysis service
func NewService(generator Generator, maxChars int, logger *zap.Logger) *Service {
	return &Service{
		generator: generator,
		parser:    NewParser(),
		maxChars:  maxChars,
		logger:    logger,
	}
}

const promptTemplate = `You are an expert meeting analyst. Analyze the following meeting transcript and extract structured information.

Instructions:
1. Derive a concise, descriptive title for the meeting.
2. Write a thorough summary of what was discussed.
3. Split the transcript into attributed segments with speaker names and timestamps where identifiable.
4. Extract minutes of meeting items, classifying each as "action", "decision", or "info".
5. Identify a category for the meeting and a list of topical tags.
6. Extract actionable tasks with a title, description, priority (High, Medium, or Low), and tags.

Also report a confidence_level between 0 and 100 for how reliable this extraction is.

Transcript:
%s`

// responseSchema constrains the model output to the exact analysis shape
func responseSchema() *ai.Schema {
	stringArray := &ai.Schema{Type: "array", Items: &ai.Schema{Type: "string"}}
	return &ai.Schema{
		Type: "object",
		Properties: map[string]*ai.Schema{
			"title":   {Type: "string"},
			"summary": {Type: "string"},
			"transcript": {
				Type: "array",
				Items: &ai.Schema{
					Type: "object",
					Properties: map[string]*ai.Schema{
						"speakername": {Type: "string"},
						"content":     {Type: "string"},
						"timestamp":   {Type: "string"},
					},
					Required: []string{"speakername", "content"},
				},
			},
			"mom": {
				Type: "array",
				Items: &ai.Schema{
					Type: "object",
					Properties: map[string]*ai.Schema{
						"type":    {Type: "string", Enum: []string{"action", "decision", "info"}},
						"content": {Type: "string"},
					},
					Required: []string{"type", "content"},
				},
			},
			"tags":     stringArray,
			"category": {Type: "string"},
			"tasks": {
				Type: "array",
				Items: &ai.Schema{
					Type: "object",
					Properties: map[string]*ai.Schema{
						"title":       {Type: "string"},
						"description": {Type: "string"},
						"priority":    {Type: "string", Enum: []string{"High", "Medium", "Low"}},
						"tags":        stringArray,
					},
					Required: []string{"title"},
				},
			},
			"confidence_level": {Type: "number"},
		},
		Required: []string{"title", "summary", "mom", "tasks", "confidence_level"},
	}
}

// Analyze runs the transcript through the model and returns the validated
// extraction. Fails fast when the model is unconfigured or the transcript
// breaks the length guard.
func (s *Service) Analyze(ctx context.Context, transcript string) (*entities.AnalysisResult, error) {
	if !s.generator.Configured() {
		return nil, errors.ErrAnalysisFailed(fmt.Errorf("generative model is not configured"))
	}
	if transcript == "" {
		return nil, errors.ErrInvalidArgument("transcript is empty")
	}
	if s.maxChars > 0 && utf8.RuneCountInString(transcript) > s.maxChars {
		return nil, errors.ErrInvalidArgument(fmt.Sprintf("transcript exceeds %d characters", s.maxChars))
	}

	prompt := fmt.Sprintf(promptTemplate, transcript)

	content, err := s.generator.GenerateJSON(ctx, prompt, responseSchema())
	if err != nil {
		if s.logger != nil {
			s.logger.Error("model call failed", zap.Error(err))
		}
		return nil, errors.ErrAnalysisFailed(err)
	}

	result, err := s.parser.Parse(content)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("model returned invalid analysis", zap.Error(err))
		}
		return nil, errors.ErrAnalysisInvalidResult(err)
	}

	return result, nil
}

// Summarize produces a freeform summary of the given text. Unlike Analyze
// the output is plain prose, not a structured extraction.
func (s *Service) Summarize(ctx context.Context, text string) (string, error) {
	if !s.generator.Configured() {
		return "", errors.ErrAnalysisFailed(fmt.Errorf("generative model is not configured"))
	}
	if text == "" {
		return "", errors.ErrInvalidArgument("text is empty")
	}
	if s.maxChars > 0 && utf8.RuneCountInString(text) > s.maxChars {
		return "", errors.ErrInvalidArgument(fmt.Sprintf("text exceeds %d characters", s.maxChars))
	}

	summary, err := s.generator.GenerateText(ctx, "Please summarize the following text:\n\n"+text)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("model call failed", zap.Error(err))
		}
		return "", errors.ErrAnalysisFailed(err)
	}
	return summary, nil
}
