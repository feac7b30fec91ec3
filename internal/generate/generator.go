// Package generate drafts cover letters and job descriptions. Two
// implementations sit behind the Generator interface: a deterministic
// template generator that needs no external services, and a Gemini-backed
// generator used when an API key is configured.
package generate

import (
	"context"
	"strings"

	"github.com/hireflux/ats-service/internal/types"
)

// Content sources reported in GenerateResponse.Source.
const (
	SourceTemplate = "template"
	SourceGemini   = "gemini"
)

// Generator drafts text for the two generation endpoints.
type Generator interface {
	CoverLetter(ctx context.Context, req *types.GenerateCoverLetterRequest) (*types.GenerateResponse, error)
	JobDescription(ctx context.Context, req *types.GenerateJobDescriptionRequest) (*types.GenerateResponse, error)
}

// normalizeTone defaults an unset tone to professional.
func normalizeTone(tone types.Tone) types.Tone {
	if tone == "" {
		return types.ToneProfessional
	}
	return tone
}

// humanJoin renders a list for prose: "Go", "Go and Rust",
// "Go, Rust, and Python".
func humanJoin(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}
