package recommend

import (
	"fmt"
	"strings"
)

const (
	TitleLabel   = "Title:"
	SummaryLabel = "Summary:"
)

// ParseStatus tags how much structure was recovered from a synthesized
// response.
type ParseStatus int

const (
	// ParseComplete means both the title and summary labels were found.
	ParseComplete ParseStatus = iota
	// ParsePartial means exactly one label was found.
	ParsePartial
	// ParseUnparsed means neither label was found. Raw holds the response.
	ParseUnparsed
	// ParseFailed means the generative call itself failed.
	ParseFailed
)

var parseStatusNames = map[ParseStatus]string{
	ParseComplete: "complete",
	ParsePartial:  "partial",
	ParseUnparsed: "unparsed",
	ParseFailed:   "failed",
}

func (s ParseStatus) String() string {
	if name, ok := parseStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ParseStatus(%d)", int(s))
}

// MarshalText renders the status by name in JSON output.
func (s ParseStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Synthesized is a generated book recommendation.
type Synthesized struct {
	Title   string      `json:"title"`
	Summary string      `json:"summary"`
	Status  ParseStatus `json:"status"`
	// Raw is the model output when it could not be parsed.
	Raw string `json:"raw,omitempty"`
}

// ParseSynthesized extracts the labeled title and summary from a model
// response. The first line starting with TitleLabel gives the title. The
// first line starting with SummaryLabel starts the summary body, which is
// every following line joined and trimmed; scanning stops there. Missing
// labels leave their field empty and are reported through Status.
func ParseSynthesized(text string) Synthesized {
	var (
		result       Synthesized
		foundTitle   bool
		foundSummary bool
	)

	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		switch {
		case !foundTitle && strings.HasPrefix(line, TitleLabel):
			result.Title = strings.TrimSpace(strings.TrimPrefix(line, TitleLabel))
			foundTitle = true
		case strings.HasPrefix(line, SummaryLabel):
			body := strings.Join(lines[i+1:], "\n")
			result.Summary = strings.TrimSpace(strings.ReplaceAll(body, "\r", ""))
			foundSummary = true
		}
		if foundSummary {
			break
		}
	}

	switch {
	case foundTitle && foundSummary:
		result.Status = ParseComplete
	case foundTitle || foundSummary:
		result.Status = ParsePartial
	default:
		result.Status = ParseUnparsed
		result.Raw = strings.TrimSpace(text)
	}
	return result
}
