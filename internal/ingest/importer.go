package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/hireflux/ats-service/internal/logging"
)

// BrowserTimeout bounds a single headless-browser render.
const BrowserTimeout = 30 * time.Second

// Posting is the result of importing a job posting URL: the extracted text
// plus whatever structure could be sniffed from the page. Title and Location
// are best-effort and may be empty.
type Posting struct {
	URL       string
	Platform  Platform
	Title     string
	Location  string
	Text      string
	Checksum  string
	FetchedAt time.Time
}

// Importer fetches job posting URLs and turns them into draft-job material.
type Importer struct {
	logger     *logging.Logger
	useBrowser bool
}

// NewImporter creates an Importer. When useBrowser is true, postings whose
// static fetch yields too little text are re-rendered in a headless browser.
func NewImporter(logger *logging.Logger, useBrowser bool) *Importer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Importer{
		logger:     logger,
		useBrowser: useBrowser,
	}
}

// Import fetches a job posting URL, extracts the posting text with
// platform-specific selectors, and sniffs the title and location.
func (im *Importer) Import(ctx context.Context, urlStr string) (*Posting, error) {
	platform := DetectPlatform(urlStr)
	im.logger.Debug("importing job posting", "url", urlStr, "platform", platform)

	result, err := Fetch(ctx, urlStr, nil)
	if err != nil {
		return nil, err
	}

	contentSelectors := PlatformContentSelectors(platform)
	noiseSelectors := PlatformNoiseSelectors(platform)

	text, err := ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return nil, err
	}

	html := result.HTML

	// SPA fallback: re-render in a headless browser when the static fetch
	// produced too little text. Browser failures fall back to the HTTP
	// content rather than failing the import.
	if im.useBrowser && ShouldUseBrowser(text) {
		im.logger.Debug("static fetch too short, rendering with browser",
			"url", urlStr, "chars", len(text))
		browserHTML, browserErr := RenderWithBrowser(ctx, urlStr, BrowserTimeout)
		if browserErr != nil {
			im.logger.Warn("browser rendering failed, using static content",
				"url", urlStr, "error", browserErr)
		} else {
			if browserText, extractErr := ExtractMainText(browserHTML, contentSelectors, noiseSelectors...); extractErr == nil {
				text = browserText
				html = browserHTML
			}
		}
	}

	posting := &Posting{
		URL:       urlStr,
		Platform:  platform,
		Title:     SniffTitle(html),
		Location:  SniffLocation(text),
		Text:      text,
		Checksum:  checksum(text),
		FetchedAt: time.Now().UTC(),
	}

	im.logger.Info("imported job posting",
		"url", urlStr,
		"platform", platform,
		"title", posting.Title,
		"chars", len(text))

	return posting, nil
}

// titleSeparators split board page titles like "Senior Engineer - Acme Corp".
var titleSeparators = []string{" | ", " - ", " – ", " — "}

// SniffTitle extracts a likely job title from the page: the first h1, falling
// back to the document title with trailing board/company segments stripped.
func SniffTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return collapseSpaces(h1)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return ""
	}
	for _, sep := range titleSeparators {
		if idx := strings.Index(title, sep); idx > 0 {
			title = title[:idx]
			break
		}
	}
	return collapseSpaces(title)
}

var locationLine = regexp.MustCompile(`(?i)^location\s*[:\-–]\s*(\S.*)$`)

// remoteWord matches "remote" as a standalone word.
var remoteWord = regexp.MustCompile(`(?i)\bremote\b`)

// SniffLocation scans extracted posting text for a location. It looks for a
// "Location:" line first; failing that, a "remote" mention near the top of
// the posting yields "Remote".
func SniffLocation(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if m := locationLine.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			return collapseSpaces(m[1])
		}
	}

	head := text
	if len(head) > 2000 {
		head = head[:2000]
	}
	if remoteWord.MatchString(head) {
		return "Remote"
	}

	return ""
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func checksum(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
