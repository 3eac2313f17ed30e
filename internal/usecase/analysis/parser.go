package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/meetscribe/meetscribe/internal/domain/entities"
)

// Parser handles parsing and strict validation of model responses
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// Wire shapes for the model output. Field names follow the response schema
// sent with the generation request.
type rawAnalysis struct {
	Title      string       `json:"title"`
	Summary    string       `json:"summary"`
	Transcript []rawSegment `json:"transcript"`
	MOM        []rawMOMItem `json:"mom"`
	Tags       []string     `json:"tags"`
	Category   string       `json:"category"`
	Tasks      []rawTask    `json:"tasks"`
	Confidence *float64     `json:"confidence_level"`
}

type rawSegment struct {
	SpeakerName string `json:"speakername"`
	Content     string `json:"content"`
	Timestamp   string `json:"timestamp"`
}

type rawMOMItem struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type rawTask struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`
}

// Parse decodes the model output into a validated AnalysisResult. Any schema
// violation fails the whole operation; there is no partial recovery.
func (p *Parser) Parse(content string) (*entities.AnalysisResult, error) {
	content = extractJSON(content)

	var raw rawAnalysis
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if raw.Title == "" {
		return nil, fmt.Errorf("missing title in response")
	}
	if raw.Summary == "" {
		return nil, fmt.Errorf("missing summary in response")
	}
	if raw.Confidence == nil {
		return nil, fmt.Errorf("missing confidence_level in response")
	}
	if *raw.Confidence < 0 || *raw.Confidence > 100 {
		return nil, fmt.Errorf("confidence_level %v out of range [0,100]", *raw.Confidence)
	}

	result := &entities.AnalysisResult{
		Title:      raw.Title,
		Summary:    raw.Summary,
		Category:   raw.Category,
		Tags:       raw.Tags,
		Confidence: int(*raw.Confidence),
	}
	if result.Tags == nil {
		result.Tags = []string{}
	}

	result.Transcript = make([]entities.TranscriptSegment, 0, len(raw.Transcript))
	for _, seg := range raw.Transcript {
		result.Transcript = append(result.Transcript, entities.TranscriptSegment{
			Speaker:   seg.SpeakerName,
			Content:   seg.Content,
			Timestamp: seg.Timestamp,
		})
	}

	result.MOM = make([]entities.MOMItem, 0, len(raw.MOM))
	for i, item := range raw.MOM {
		kind := entities.MOMKind(item.Type)
		if !kind.IsValid() {
			return nil, fmt.Errorf("mom[%d]: invalid type %q", i, item.Type)
		}
		result.MOM = append(result.MOM, entities.MOMItem{
			Kind:    kind,
			Content: item.Content,
		})
	}

	result.Tasks = make([]entities.SuggestedTask, 0, len(raw.Tasks))
	for i, task := range raw.Tasks {
		if task.Title == "" {
			return nil, fmt.Errorf("tasks[%d]: missing title", i)
		}
		priority := entities.TaskPriority(task.Priority)
		if task.Priority == "" {
			priority = entities.PriorityMedium
		} else if !priority.IsValid() {
			return nil, fmt.Errorf("tasks[%d]: invalid priority %q", i, task.Priority)
		}
		tags := task.Tags
		if tags == nil {
			tags = []string{}
		}
		result.Tasks = append(result.Tasks, entities.SuggestedTask{
			Title:       task.Title,
			Description: task.Description,
			Priority:    priority,
			Tags:        tags,
		})
	}

	return result, nil
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
