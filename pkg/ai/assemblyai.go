package ai

import (
	"context"
	"fmt"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/meetscribe/meetscribe/pkg/config"
)

// AssemblyAIClient wraps the AssemblyAI SDK for synchronous transcription
type AssemblyAIClient struct {
	apiKey string
	client *aai.Client
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config.
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig) *AssemblyAIClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	return &AssemblyAIClient{
		apiKey: apiKey,
		client: aai.NewClient(apiKey),
	}
}

// Configured reports whether an API key is available.
func (c *AssemblyAIClient) Configured() bool {
	return c.apiKey != ""
}

// TranscribeFromURL transcribes an audio/video recording reachable at the given
// URL and blocks until the transcript is ready. Speaker labels are requested so
// the text can be rendered as per-speaker lines.
func (c *AssemblyAIClient) TranscribeFromURL(ctx context.Context, recordingURL string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("assemblyai api key is not configured")
	}

	transcript, err := c.client.Transcripts.TranscribeFromURL(ctx, recordingURL, &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	})
	if err != nil {
		return "", err
	}
	if transcript.Status == aai.TranscriptStatusError {
		return "", fmt.Errorf("transcription failed: %s", aai.ToString(transcript.Error))
	}

	// Prefer speaker-labelled utterances so the analysis sees who said what.
	if len(transcript.Utterances) > 0 {
		var sb strings.Builder
		for _, u := range transcript.Utterances {
			fmt.Fprintf(&sb, "Speaker %s: %s\n", aai.ToString(u.Speaker), aai.ToString(u.Text))
		}
		return sb.String(), nil
	}

	return aai.ToString(transcript.Text), nil
}
