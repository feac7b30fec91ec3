package resume

import (
	"regexp"
	"strings"
)

// skillDictionary maps lowercase token variants to canonical skill names.
// Ambiguous bare words ("go", "rest", "c", "r") are deliberately absent:
// they collide with ordinary prose far too often for token matching, so only
// their unambiguous variants are listed.
var skillDictionary = map[string]string{
	"golang":        "Go",
	"javascript":    "JavaScript",
	"js":            "JavaScript",
	"typescript":    "TypeScript",
	"ts":            "TypeScript",
	"python":        "Python",
	"java":          "Java",
	"c++":           "C++",
	"c#":            "C#",
	"ruby":          "Ruby",
	"rust":          "Rust",
	"php":           "PHP",
	"swift":         "Swift",
	"kotlin":        "Kotlin",
	"scala":         "Scala",
	"sql":           "SQL",
	"postgresql":    "PostgreSQL",
	"postgres":      "PostgreSQL",
	"mysql":         "MySQL",
	"mongodb":       "MongoDB",
	"redis":         "Redis",
	"kafka":         "Kafka",
	"rabbitmq":      "RabbitMQ",
	"elasticsearch": "Elasticsearch",
	"docker":        "Docker",
	"kubernetes":    "Kubernetes",
	"k8s":           "Kubernetes",
	"terraform":     "Terraform",
	"ansible":       "Ansible",
	"jenkins":       "Jenkins",
	"aws":           "AWS",
	"gcp":           "GCP",
	"azure":         "Azure",
	"linux":         "Linux",
	"git":           "Git",
	"react":         "React",
	"react.js":      "React",
	"reactjs":       "React",
	"vue":           "Vue",
	"vue.js":        "Vue",
	"vuejs":         "Vue",
	"angular":       "Angular",
	"node.js":       "Node.js",
	"nodejs":        "Node.js",
	"django":        "Django",
	"flask":         "Flask",
	"spring":        "Spring",
	"graphql":       "GraphQL",
	"grpc":          "gRPC",
	"html":          "HTML",
	"css":           "CSS",
	"grafana":       "Grafana",
	"prometheus":    "Prometheus",
}

// skillPhrases maps two-token phrases to canonical skill names.
var skillPhrases = map[string]string{
	"go lang":          "Go",
	"machine learning": "Machine Learning",
	"data engineering": "Data Engineering",
	"google cloud":     "GCP",
	"ci cd":            "CI/CD",
}

// tokenPattern strips everything except letters, digits, and the characters
// that appear inside skill names (+, #, .).
var tokenPattern = regexp.MustCompile(`[^a-z0-9+#.\s]+`)

// Tokenize lowercases text and splits it into skill-matchable tokens,
// keeping +, #, and . as word characters so "c++", "c#", and "node.js"
// survive intact.
func Tokenize(text string) []string {
	cleaned := tokenPattern.ReplaceAllString(strings.ToLower(text), " ")
	return strings.Fields(cleaned)
}

// SuggestSkills scans resume text for known skills and returns their
// canonical names, deduplicated, in order of first appearance.
func SuggestSkills(text string) []string {
	tokens := Tokenize(text)

	var suggested []string
	seen := make(map[string]bool)
	add := func(canonical string) {
		if !seen[canonical] {
			seen[canonical] = true
			suggested = append(suggested, canonical)
		}
	}

	for i, token := range tokens {
		if i+1 < len(tokens) {
			if canonical, ok := skillPhrases[token+" "+tokens[i+1]]; ok {
				add(canonical)
			}
		}
		if canonical, ok := lookupSkill(token); ok {
			add(canonical)
		}
	}

	return suggested
}

// NormalizeSkillName normalizes a skill name to its canonical form. Unknown
// single-word skills get their first letter capitalized; mixed-case names are
// kept as written.
func NormalizeSkillName(skillName string) string {
	normalized := strings.TrimSpace(skillName)
	if normalized == "" {
		return ""
	}

	lower := strings.ToLower(normalized)
	if canonical, ok := skillDictionary[lower]; ok {
		return canonical
	}
	if canonical, ok := skillPhrases[lower]; ok {
		return canonical
	}

	// Mixed-case names are presumed intentional (e.g. "PyTorch")
	if normalized != strings.ToUpper(normalized) && normalized != strings.ToLower(normalized) {
		return normalized
	}

	if !strings.Contains(normalized, " ") && len(normalized) > 1 {
		return strings.ToUpper(normalized[:1]) + strings.ToLower(normalized[1:])
	}

	return normalized
}

// lookupSkill resolves a token against the dictionary, retrying without a
// trailing sentence period ("PostgreSQL." at the end of a sentence).
func lookupSkill(token string) (string, bool) {
	if canonical, ok := skillDictionary[token]; ok {
		return canonical, true
	}
	trimmed := strings.TrimRight(token, ".")
	if trimmed != token && trimmed != "" {
		if canonical, ok := skillDictionary[trimmed]; ok {
			return canonical, true
		}
	}
	return "", false
}
