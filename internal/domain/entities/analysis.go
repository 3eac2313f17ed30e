package entities

// MOMKind classifies a minutes-of-meeting item
type MOMKind string

const (
	MOMKindAction   MOMKind = "action"
	MOMKindDecision MOMKind = "decision"
	MOMKindInfo     MOMKind = "info"
)

// IsValid checks if the MOM kind is one of the allowed values
func (k MOMKind) IsValid() bool {
	switch k {
	case MOMKindAction, MOMKindDecision, MOMKindInfo:
		return true
	}
	return false
}

// TranscriptSegment is one attributed utterance of the meeting
type TranscriptSegment struct {
	Speaker   string `json:"speaker"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// MOMItem is a single minutes-of-meeting entry
type MOMItem struct {
	Kind    MOMKind `json:"kind"`
	Content string  `json:"content"`
}

// SuggestedTask is a task proposed by the analysis, not yet persisted
type SuggestedTask struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    TaskPriority `json:"priority"`
	Tags        []string     `json:"tags"`
}

// AnalysisResult is the validated output of a transcript analysis
type AnalysisResult struct {
	Title      string              `json:"title"`
	Summary    string              `json:"summary"`
	Transcript []TranscriptSegment `json:"transcript"`
	MOM        []MOMItem           `json:"mom"`
	Tags       []string            `json:"tags"`
	Category   string              `json:"category"`
	Tasks      []SuggestedTask     `json:"tasks"`
	Confidence int                 `json:"confidence_level"`
}
