package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "keeps special skill characters",
			text:     "Expert in C++, C# and Node.js!",
			expected: []string{"expert", "in", "c++", "c#", "and", "node.js"},
		},
		{
			name:     "lowercases",
			text:     "PostgreSQL Kubernetes",
			expected: []string{"postgresql", "kubernetes"},
		},
		{
			name:     "strips punctuation",
			text:     "Go, Python; (Rust)",
			expected: []string{"go", "python", "rust"},
		},
		{
			name:     "empty input",
			text:     "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.text))
		})
	}
}

func TestSuggestSkills(t *testing.T) {
	text := `Jane Doe
Senior Backend Engineer with 8 years of golang and Python experience.
Built services on PostgreSQL, Redis and Kafka, deployed to k8s on AWS.
Frontend work in TypeScript and React.`

	skills := SuggestSkills(text)

	assert.Equal(t, []string{
		"Go", "Python", "PostgreSQL", "Redis", "Kafka", "Kubernetes", "AWS",
		"TypeScript", "React",
	}, skills)
}

func TestSuggestSkills_Deduplicates(t *testing.T) {
	text := "golang golang k8s Kubernetes javascript JS"
	skills := SuggestSkills(text)
	assert.Equal(t, []string{"Go", "Kubernetes", "JavaScript"}, skills)
}

func TestSuggestSkills_Phrases(t *testing.T) {
	text := "Experience with machine learning pipelines on Google Cloud."
	skills := SuggestSkills(text)
	assert.Contains(t, skills, "Machine Learning")
	assert.Contains(t, skills, "GCP")
}

func TestSuggestSkills_TrailingPeriod(t *testing.T) {
	text := "Deep knowledge of PostgreSQL."
	assert.Equal(t, []string{"PostgreSQL"}, SuggestSkills(text))
}

func TestSuggestSkills_IgnoresAmbiguousWords(t *testing.T) {
	// "go" and "rest" as plain English words must not be picked up as skills
	text := "Willing to go the extra mile, with no rest until launch."
	assert.Empty(t, SuggestSkills(text))
}

func TestNormalizeSkillName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "known variant", input: "golang", expected: "Go"},
		{name: "known variant uppercase", input: "K8S", expected: "Kubernetes"},
		{name: "known phrase", input: "machine learning", expected: "Machine Learning"},
		{name: "mixed case kept", input: "PyTorch", expected: "PyTorch"},
		{name: "lowercase capitalized", input: "erlang", expected: "Erlang"},
		{name: "whitespace trimmed", input: "  docker  ", expected: "Docker"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSkillName(tt.input))
		})
	}
}
