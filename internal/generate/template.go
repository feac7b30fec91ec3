package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/hireflux/ats-service/internal/types"
)

// TemplateGenerator produces deterministic drafts by template substitution.
// It is the fallback when no LLM is configured and the baseline the Gemini
// path is compared against in tests.
type TemplateGenerator struct{}

// NewTemplateGenerator creates a TemplateGenerator.
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

// coverLetterStyle holds the tone-specific fragments of a cover letter.
type coverLetterStyle struct {
	salutation string // format arg: company name
	opening    string // format args: job title, company name
	closing    string
	signoff    string
}

var coverLetterStyles = map[types.Tone]coverLetterStyle{
	types.ToneProfessional: {
		salutation: "Dear Hiring Manager,",
		opening:    "I am writing to express my interest in the %s position at %s.",
		closing:    "I would welcome the opportunity to discuss how my background aligns with your needs.",
		signoff:    "Sincerely,",
	},
	types.ToneConversational: {
		salutation: "Hi %s team,",
		opening:    "I came across your %s opening at %s and it immediately caught my attention.",
		closing:    "I'd love to chat about the role and what your team is building.",
		signoff:    "Best,",
	},
	types.ToneEnthusiastic: {
		salutation: "Dear %s team,",
		opening:    "I was thrilled to discover the %s opening at %s — it is exactly the kind of role I have been looking for!",
		closing:    "I would be excited to bring this energy to your team and can't wait to hear from you.",
		signoff:    "With enthusiasm,",
	},
}

// CoverLetter drafts a cover letter from the request fields.
func (g *TemplateGenerator) CoverLetter(_ context.Context, req *types.GenerateCoverLetterRequest) (*types.GenerateResponse, error) {
	style := coverLetterStyles[normalizeTone(req.Tone)]

	var b strings.Builder

	salutation := style.salutation
	if strings.Contains(salutation, "%s") {
		salutation = fmt.Sprintf(salutation, req.CompanyName)
	}
	b.WriteString(salutation)
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf(style.opening, req.JobTitle, req.CompanyName))

	if len(req.Skills) > 0 {
		b.WriteString(fmt.Sprintf(" My experience with %s maps directly onto what you are looking for.",
			humanJoin(req.Skills)))
	}
	b.WriteString("\n")

	if len(req.Highlights) > 0 {
		b.WriteString("\nA few highlights from my career so far:\n")
		for _, h := range req.Highlights {
			b.WriteString("- ")
			b.WriteString(h)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(style.closing)
	b.WriteString("\n\n")
	b.WriteString(style.signoff)
	b.WriteString("\n")
	b.WriteString(req.CandidateName)
	b.WriteString("\n")

	return &types.GenerateResponse{
		Content: b.String(),
		Source:  SourceTemplate,
	}, nil
}

// jobDescriptionStyle holds the tone-specific fragments of a job description.
type jobDescriptionStyle struct {
	opening string // format args: company name, job title
	invite  string
}

var jobDescriptionStyles = map[types.Tone]jobDescriptionStyle{
	types.ToneProfessional: {
		opening: "%s is seeking a %s to join our team.",
		invite:  "If your experience matches the profile above, we encourage you to apply.",
	},
	types.ToneConversational: {
		opening: "We're %s, and we're looking for a %s to join us.",
		invite:  "Sound like you? We'd love to hear from you.",
	},
	types.ToneEnthusiastic: {
		opening: "%s is growing fast and we are excited to add a %s to the team!",
		invite:  "If this gets you as excited as it gets us, apply today!",
	},
}

// JobDescription drafts a job description from the request fields.
func (g *TemplateGenerator) JobDescription(_ context.Context, req *types.GenerateJobDescriptionRequest) (*types.GenerateResponse, error) {
	style := jobDescriptionStyles[normalizeTone(req.Tone)]

	var b strings.Builder

	b.WriteString(fmt.Sprintf(style.opening, req.CompanyName, req.Title))
	if req.Location != "" {
		b.WriteString(fmt.Sprintf(" This role is based in %s.", req.Location))
	}
	b.WriteString("\n\n")

	b.WriteString("What you'll need:\n")
	for _, s := range req.RequiredSkills {
		b.WriteString("- ")
		b.WriteString(s)
		b.WriteString("\n")
	}

	if len(req.PreferredSkills) > 0 {
		b.WriteString("\nNice to have:\n")
		for _, s := range req.PreferredSkills {
			b.WriteString("- ")
			b.WriteString(s)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(style.invite)
	b.WriteString("\n")

	return &types.GenerateResponse{
		Content: b.String(),
		Source:  SourceTemplate,
	}, nil
}
