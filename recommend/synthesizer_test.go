package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/librarian/ai"
	"github.com/poiesic/librarian/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSynthesizer(t *testing.T) {
	_, err := NewSynthesizer(nil)
	assert.ErrorIs(t, err, ErrGeneratorRequired)

	_, err = NewSynthesizer(mock.NewMockGenerator(), WithSynthesizerLogger(nil))
	require.NoError(t, err)
}

func TestSynthesize(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		want     Synthesized
	}{
		{
			name:     "labeled response",
			response: "Title: The Clockwork Orchard\n\nSummary:\nA gardener builds mechanical trees.",
			want: Synthesized{
				Title:   "The Clockwork Orchard",
				Summary: "A gardener builds mechanical trees.",
				Status:  ParseComplete,
			},
		},
		{
			name:     "unlabeled response",
			response: "Sorry, I can't do that.",
			want: Synthesized{
				Status: ParseUnparsed,
				Raw:    "Sorry, I can't do that.",
			},
		},
		{
			name: "call failure",
			err:  errors.New("connection refused"),
			want: Synthesized{
				Title:   "Generated Book",
				Summary: "Failed to generate fictional book: connection refused",
				Status:  ParseFailed,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := mock.NewMockGenerator()
			gen.GenerateFunc = func(ctx context.Context, req ai.GenerationRequest) (string, error) {
				return tt.response, tt.err
			}
			s, err := NewSynthesizer(gen)
			require.NoError(t, err)

			got := s.Synthesize(context.Background(), "robots and gardens")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSynthesize_Request(t *testing.T) {
	gen := mock.NewMockGenerator()
	s, err := NewSynthesizer(gen)
	require.NoError(t, err)

	s.Synthesize(context.Background(), "something about rebellion and freedom")

	req, ok := gen.LastRequest()
	require.True(t, ok)
	assert.Equal(t, synthesizerSystemPrompt, req.System)
	assert.Equal(t, 700, req.MaxTokens)
	assert.InDelta(t, 0.8, req.Temperature, 1e-9)
	assert.Contains(t, req.User, `Based on the following user request: "something about rebellion and freedom"`)
	assert.Contains(t, req.User, "Title: [Book Title]")
	assert.Contains(t, req.User, "Summary:\n[Four-paragraph summary]")
}
