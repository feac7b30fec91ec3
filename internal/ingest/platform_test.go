package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected Platform
	}{
		{
			name:     "greenhouse board URL",
			url:      "https://boards.greenhouse.io/acme/jobs/123456",
			expected: PlatformGreenhouse,
		},
		{
			name:     "lever posting URL",
			url:      "https://jobs.lever.co/acme/abc-def",
			expected: PlatformLever,
		},
		{
			name:     "workday URL",
			url:      "https://acme.wd1.myworkdayjobs.com/en-US/careers/job/123",
			expected: PlatformWorkday,
		},
		{
			name:     "company careers page",
			url:      "https://acme.com/careers/backend-engineer",
			expected: PlatformUnknown,
		},
		{
			name:     "malformed URL",
			url:      "://bad",
			expected: PlatformUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestPlatformContentSelectors(t *testing.T) {
	// Every platform must yield at least one selector
	for _, p := range []Platform{PlatformGreenhouse, PlatformLever, PlatformWorkday, PlatformUnknown} {
		assert.NotEmpty(t, PlatformContentSelectors(p), "platform %s", p)
	}

	// Unknown platform falls back to the generic job posting selectors
	assert.Equal(t, JobPostingSelectors(), PlatformContentSelectors(PlatformUnknown))
}

func TestPlatformNoiseSelectors_IncludeCommonNoise(t *testing.T) {
	for _, p := range []Platform{PlatformGreenhouse, PlatformLever, PlatformWorkday, PlatformUnknown} {
		selectors := PlatformNoiseSelectors(p)
		assert.Contains(t, selectors, "form", "platform %s", p)
		assert.Contains(t, selectors, ".eeo-statement", "platform %s", p)
	}
}
