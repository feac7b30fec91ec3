package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/hireflux/ats-service/internal/types"
)

// DefaultModel is the Gemini model used for drafting when none is configured.
const DefaultModel = "gemini-2.5-flash"

// GeminiGenerator drafts text with the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini-backed generator. An empty model name
// selects DefaultModel.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{
		client: client,
		model:  model,
	}, nil
}

// CoverLetter drafts a cover letter with Gemini.
func (g *GeminiGenerator) CoverLetter(ctx context.Context, req *types.GenerateCoverLetterRequest) (*types.GenerateResponse, error) {
	content, err := g.generateText(ctx, coverLetterPrompt(req))
	if err != nil {
		return nil, err
	}
	return &types.GenerateResponse{
		Content: content,
		Source:  SourceGemini,
	}, nil
}

// JobDescription drafts a job description with Gemini.
func (g *GeminiGenerator) JobDescription(ctx context.Context, req *types.GenerateJobDescriptionRequest) (*types.GenerateResponse, error) {
	content, err := g.generateText(ctx, jobDescriptionPrompt(req))
	if err != nil {
		return nil, err
	}
	return &types.GenerateResponse{
		Content: content,
		Source:  SourceGemini,
	}, nil
}

// Close releases resources held by the client.
func (g *GeminiGenerator) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func (g *GeminiGenerator) generateText(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0.4)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(resp)
}

// toneInstructions translates a tone into a prompt directive.
var toneInstructions = map[types.Tone]string{
	types.ToneProfessional:   "Use a formal, professional tone.",
	types.ToneConversational: "Use a friendly, conversational tone.",
	types.ToneEnthusiastic:   "Use an energetic, enthusiastic tone.",
}

func coverLetterPrompt(req *types.GenerateCoverLetterRequest) string {
	var b strings.Builder
	b.WriteString("Write a cover letter for the following application. ")
	b.WriteString(toneInstructions[normalizeTone(req.Tone)])
	b.WriteString(" Return only the letter text, no commentary.\n\n")
	fmt.Fprintf(&b, "Candidate: %s\n", req.CandidateName)
	fmt.Fprintf(&b, "Position: %s at %s\n", req.JobTitle, req.CompanyName)
	if len(req.Skills) > 0 {
		fmt.Fprintf(&b, "Relevant skills: %s\n", strings.Join(req.Skills, ", "))
	}
	if len(req.Highlights) > 0 {
		b.WriteString("Career highlights:\n")
		for _, h := range req.Highlights {
			fmt.Fprintf(&b, "- %s\n", h)
		}
	}
	return b.String()
}

func jobDescriptionPrompt(req *types.GenerateJobDescriptionRequest) string {
	var b strings.Builder
	b.WriteString("Write a job description for the following posting. ")
	b.WriteString(toneInstructions[normalizeTone(req.Tone)])
	b.WriteString(" Return only the description text, no commentary.\n\n")
	fmt.Fprintf(&b, "Title: %s\n", req.Title)
	fmt.Fprintf(&b, "Company: %s\n", req.CompanyName)
	if req.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", req.Location)
	}
	fmt.Fprintf(&b, "Required skills: %s\n", strings.Join(req.RequiredSkills, ", "))
	if len(req.PreferredSkills) > 0 {
		fmt.Fprintf(&b, "Preferred skills: %s\n", strings.Join(req.PreferredSkills, ", "))
	}
	return b.String()
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
