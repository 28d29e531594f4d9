package cleaner

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Activity and exercise prompts scattered through the chapter text. They are
// addressed to the student, not part of the expository content, so they only
// add noise to retrieval.
var promptPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Look at.*`),
	regexp.MustCompile(`(?i)Ask older.*`),
	regexp.MustCompile(`(?i)Can you.*`),
	regexp.MustCompile(`(?i)Do you think.*`),
	regexp.MustCompile(`(?i)Pretend.*`),
	regexp.MustCompile(`(?i)What.*`),
	regexp.MustCompile(`(?i)Why.*`),
	regexp.MustCompile(`(?i)How many.*`),
	regexp.MustCompile(`(?i)Are the above.*`),
	regexp.MustCompile(`(?i)Think of.*`),
	regexp.MustCompile(`(?i)Find out.*`),
	regexp.MustCompile(`(?i)Discuss.*`),
}

var (
	exercisesRe  = regexp.MustCompile(`(?i)EXERCISES`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// captionWordLimit drops short lines, which in the raw chapter text are
// image captions and headings rather than prose.
const captionWordLimit = 15

// Clean strips activity prompts, caption lines, and the trailing exercises
// section from raw chapter text, then collapses whitespace. The result is
// the expository prose the retriever should index.
func Clean(text string) string {
	for _, p := range promptPatterns {
		text = p.ReplaceAllString(text, "")
	}

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if len(strings.Fields(line)) > captionWordLimit {
			kept = append(kept, line)
		}
	}
	text = strings.Join(kept, "\n")

	if loc := exercisesRe.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}

	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// ExtractFromHTML pulls the main textual content out of an HTML page,
// preferring the usual content containers and falling back to body text.
func ExtractFromHTML(doc *goquery.Document) string {
	selectors := []string{
		"main",
		"article",
		".content",
		"#content",
		".chapter",
		"#chapter",
	}

	var content string
	for _, selector := range selectors {
		if selected := doc.Find(selector); selected.Length() > 0 {
			content = selected.Text()
			break
		}
	}

	if content == "" {
		content = doc.Find("body").Text()
	}

	return strings.TrimSpace(content)
}

// FetchChapter downloads a chapter page and extracts its text content.
func FetchChapter(url string, timeout time.Duration) (string, error) {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	client := &http.Client{Timeout: timeout}

	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("received status code %d for URL: %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	return ExtractFromHTML(doc), nil
}
