// Command clean-chapter prepares raw chapter text for chunking: it strips
// activity prompts, caption lines, and the exercises section. The input is
// either a local file or a page fetched from a URL.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"

	"revise/pkg/cleaner"
)

func main() {
	var inFile string
	var url string
	var outFile string
	flag.StringVar(&inFile, "in", "", "Raw chapter text file")
	flag.StringVar(&url, "url", "", "Fetch the chapter from this URL instead of a file")
	flag.StringVar(&outFile, "out", "chapter_clean.txt", "Output file for cleaned text")
	flag.Parse()

	if inFile == "" && url == "" {
		fmt.Fprintln(os.Stderr, "Usage: clean-chapter -in raw.txt | -url https://... [-out chapter_clean.txt]")
		os.Exit(1)
	}

	var raw string
	switch {
	case url != "":
		text, err := cleaner.FetchChapter(url, 0)
		if err != nil {
			log.Fatalf("failed to fetch chapter: %v", err)
		}
		raw = text
	default:
		data, err := os.ReadFile(inFile)
		if err != nil {
			log.Fatalf("failed to read input: %v", err)
		}
		raw = string(data)
	}

	cleaned := cleaner.Clean(raw)
	if cleaned == "" {
		log.Fatal("cleaning produced no text; check the input")
	}

	if err := os.WriteFile(outFile, []byte(cleaned), 0o644); err != nil {
		log.Fatalf("failed to write output: %v", err)
	}

	color.Green("✓ Cleaned text saved to %s", outFile)
}
