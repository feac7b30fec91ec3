package ingest

import (
	"net/url"
	"strings"
)

// Platform identifies the job board a posting URL belongs to.
type Platform string

// Job boards with dedicated selector sets.
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformUnknown    Platform = "unknown"
)

// platformHosts maps host fragments to platforms, checked in order.
var platformHosts = []struct {
	fragment string
	platform Platform
}{
	{"greenhouse.io", PlatformGreenhouse},
	{"lever.co", PlatformLever},
	{"workday.com", PlatformWorkday},
	{"myworkdayjobs.com", PlatformWorkday},
}

// DetectPlatform identifies the job board platform from a posting URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)
	for _, ph := range platformHosts {
		if strings.Contains(host, ph.fragment) {
			return ph.platform
		}
	}

	return PlatformUnknown
}

// contentSelectorsByPlatform lists description containers per board, most
// specific first. ExtractMainText takes the first selector that matches.
var contentSelectorsByPlatform = map[Platform][]string{
	PlatformGreenhouse: {
		".job__description.body",
		".job__description",
		".job-description__content",
		"#content",
		".job-post-container",
	},
	PlatformLever: {
		".posting-page",
		".section-wrapper.page-full-width",
		".posting-description",
		".content",
	},
	PlatformWorkday: {
		"[data-automation-id='jobDescription']",
		".gwt-HTML",
		".job-description",
	},
}

// PlatformContentSelectors returns the description selectors for a platform,
// falling back to the generic job posting set.
func PlatformContentSelectors(platform Platform) []string {
	if selectors, ok := contentSelectorsByPlatform[platform]; ok {
		return selectors
	}
	return JobPostingSelectors()
}

// commonNoiseSelectors match noise every job board carries: application
// forms, legal boilerplate, share widgets, consent banners.
var commonNoiseSelectors = []string{
	"form",
	"#application-form",
	".application-form",
	".apply-button-container",
	"[data-testid='application-form']",
	".voluntary-disclosure",
	".eeo-statement",
	".eeo-section",
	".legal-disclosure",
	".self-identification",
	".social-share",
	".share-buttons",
	".cookie-consent",
	".gdpr-notice",
}

var noiseSelectorsByPlatform = map[Platform][]string{
	PlatformGreenhouse: {
		".application--wrapper",
		".voluntary-self-id",
		"#usa_self_id_section",
		".post-apply",
	},
	PlatformLever: {
		".apply-section",
		".lever-application-form",
		".posting-apply",
	},
	PlatformWorkday: {
		"[data-automation-id='applyButton']",
		".application-section",
	},
}

// PlatformNoiseSelectors returns the selectors to strip before text
// extraction: the common noise set plus the platform's own.
func PlatformNoiseSelectors(platform Platform) []string {
	extra := noiseSelectorsByPlatform[platform]
	selectors := make([]string, 0, len(commonNoiseSelectors)+len(extra))
	selectors = append(selectors, commonNoiseSelectors...)
	return append(selectors, extra...)
}
