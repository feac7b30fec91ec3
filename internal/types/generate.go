// Package types provides type definitions for structured data used throughout the ats-service system.
package types

import (
	"github.com/go-playground/validator/v10"
)

// Tone selects the writing style of generated text.
type Tone string

// Generation tones.
const (
	ToneProfessional   Tone = "professional"
	ToneConversational Tone = "conversational"
	ToneEnthusiastic   Tone = "enthusiastic"
)

// GenerateCoverLetterRequest represents the request to draft a cover letter
// for a job from the caller's candidate profile.
type GenerateCoverLetterRequest struct {
	JobTitle      string   `json:"job_title" validate:"required,min=1,max=200"`
	CompanyName   string   `json:"company_name" validate:"required,min=1,max=200"`
	CandidateName string   `json:"candidate_name" validate:"required,min=1,max=200"`
	Skills        []string `json:"skills,omitempty" validate:"omitempty,dive,min=1"`
	Highlights    []string `json:"highlights,omitempty" validate:"omitempty,dive,min=1"`
	Tone          Tone     `json:"tone,omitempty" validate:"omitempty,oneof=professional conversational enthusiastic"`
}

// GenerateJobDescriptionRequest represents the request to draft a job
// description from structured posting fields.
type GenerateJobDescriptionRequest struct {
	Title           string   `json:"title" validate:"required,min=1,max=200"`
	CompanyName     string   `json:"company_name" validate:"required,min=1,max=200"`
	RequiredSkills  []string `json:"required_skills" validate:"required,min=1,dive,min=1"`
	PreferredSkills []string `json:"preferred_skills,omitempty" validate:"omitempty,dive,min=1"`
	Location        string   `json:"location,omitempty"`
	Tone            Tone     `json:"tone,omitempty" validate:"omitempty,oneof=professional conversational enthusiastic"`
}

// GenerateResponse represents generated text returned to the caller.
type GenerateResponse struct {
	Content string `json:"content"`
	Source  string `json:"source"`
}

// Validate validates the GenerateCoverLetterRequest using the validator.
func (r *GenerateCoverLetterRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the GenerateJobDescriptionRequest using the validator.
func (r *GenerateJobDescriptionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
