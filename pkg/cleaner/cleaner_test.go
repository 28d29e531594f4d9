package cleaner_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revise/pkg/cleaner"
)

const prose = "Media is the plural of the word medium and it describes the various ways through which we communicate in society today and every day."

func TestClean_RemovesActivityPrompts(t *testing.T) {
	text := prose + "\nDiscuss with your teacher what this means for your town and your school and your friends and neighbours today."

	got := cleaner.Clean(text)
	assert.Contains(t, got, "plural of the word medium")
	assert.NotContains(t, got, "Discuss")
}

func TestClean_DropsCaptionLines(t *testing.T) {
	text := prose + "\nA newspaper printing press\n" + prose

	got := cleaner.Clean(text)
	assert.NotContains(t, got, "printing press")
	assert.Equal(t, 2, strings.Count(got, "plural of the word medium"))
}

func TestClean_CutsExercisesSection(t *testing.T) {
	text := prose + "\n" + prose + " EXERCISES 1. In what ways does the media play an important role?"

	got := cleaner.Clean(text)
	assert.NotContains(t, got, "important role")
	assert.Contains(t, got, "plural of the word medium")
}

func TestClean_CollapsesWhitespace(t *testing.T) {
	got := cleaner.Clean(prose + "   \n\t " + prose)
	assert.NotContains(t, got, "  ")
	assert.NotContains(t, got, "\n")
}

func TestExtractFromHTML(t *testing.T) {
	html := `
		<html>
			<body>
				<nav>Navigation links</nav>
				<main>
					<h1>Understanding Media</h1>
					<p>Television brings the world closer to us.</p>
				</main>
			</body>
		</html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	got := cleaner.ExtractFromHTML(doc)
	assert.Contains(t, got, "Television brings the world closer")
	assert.NotContains(t, got, "Navigation links")
}

func TestFetchChapter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><article><p>Chapter text here.</p></article></body></html>`))
	}))
	defer server.Close()

	got, err := cleaner.FetchChapter(server.URL, 0)
	require.NoError(t, err)
	assert.Contains(t, got, "Chapter text here.")
}

func TestFetchChapter_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := cleaner.FetchChapter(server.URL, 0)
	assert.Error(t, err)
}
