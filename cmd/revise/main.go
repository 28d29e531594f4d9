package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"

	"revise/internal/models"
	"revise/pkg/config"
	"revise/pkg/llm"
	"revise/pkg/retriever"
	"revise/pkg/session"
)

func main() {
	_ = godotenv.Load()

	var configPath string
	var sourceFile string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&sourceFile, "source", "", "Chapter text file (overrides config)")
	flag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}
	if sourceFile != "" {
		cfg.Retriever.SourceFile = sourceFile
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "config error: %v\n", e)
		}
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func getProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func getSpinner(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	logFile, err := os.OpenFile(cfg.Session.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open response log: %v", err)
	}
	defer logFile.Close()
	logger := log.New(logFile, "", log.LstdFlags)

	embedder, err := llm.NewEmbedderWithConfig(llm.EmbedderConfig{
		Model:   cfg.LLM.EmbeddingModel,
		BaseURL: cfg.LLM.BaseURL,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	generator, err := llm.NewGeneratorWithConfig(llm.GeneratorConfig{
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		BaseURL:     cfg.LLM.BaseURL,
	})
	if err != nil {
		return err
	}

	color.Blue("\nLoading %q", cfg.Retriever.SourceFile)
	loadBar := getProgressBar(-1, " Embedding chapter chunks...")
	ret, err := retriever.NewFromFile(ctx, cfg.Retriever.SourceFile, embedder, retriever.RetrieverConfig{
		ChunkSize:  cfg.Retriever.ChunkSize,
		Overlap:    cfg.Retriever.ChunkOverlap,
		RateLimit:  cfg.Retriever.RateLimit,
		OnProgress: func(done int) { loadBar.Set(done) },
		Logger:     logger,
	})
	loadBar.Finish()
	if err != nil {
		return err
	}
	color.Green("✓ Embedded %d chunks\n", ret.Len())

	sess := session.NewWithConfig(session.SessionConfig{
		TopK:   cfg.Retriever.TopK,
		Logger: logger,
	}, ret, generator, embedder)

	color.Cyan("\nYou will be asked questions from the %q chapter.", cfg.Session.Chapter)
	color.Cyan("Type your answer for instant feedback, 'next' for a new question, 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	questionPrompt := color.New(color.FgYellow, color.Bold).PrintfFunc()
	answerPrompt := color.New(color.FgGreen).PrintfFunc()

	for {
		questionPrompt("\nQuestion: %s\n", sess.Question())
		answerPrompt("Your answer: ")
		if !scanner.Scan() {
			break
		}

		answer := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(answer) {
		case "":
			continue
		case "exit":
			return nil
		case "next":
			sess.NextQuestion()
			continue
		}

		spinner := getSpinner(" Checking your answer...")
		turn, err := sess.Submit(ctx, answer)
		spinner.Finish()
		fmt.Print("\n")

		if errors.Is(err, session.ErrNoRelevantChunks) {
			color.Yellow("No relevant chunks found for this question.")
			continue
		}
		if err != nil {
			color.Red("Error generating answer: %v", err)
			continue
		}

		color.Cyan("Model Answer:")
		fmt.Println(turn.ModelAnswer)
		printFeedback(turn)
		printHistory(sess.History())

		sess.NextQuestion()
	}

	return nil
}

func printFeedback(turn models.ConversationTurn) {
	switch turn.Feedback {
	case models.Correct:
		color.Green("Feedback: %s (Similarity: %s)", turn.Feedback, turn.Similarity)
	case models.Partial:
		color.Yellow("Feedback: %s (Similarity: %s)", turn.Feedback, turn.Similarity)
	case models.Incorrect:
		color.Red("Feedback: %s (Similarity: %s)", turn.Feedback, turn.Similarity)
	default:
		color.Yellow("Feedback: %s", turn.Feedback)
	}
}

func printHistory(history []models.ConversationTurn) {
	fmt.Println("\n--- Conversation History ---")
	for i, turn := range history {
		fmt.Printf("\nTurn %d:\n", i+1)
		fmt.Printf("Q: %s\n", turn.Question)
		fmt.Printf("Your Answer: %s\n", turn.UserAnswer)
		fmt.Printf("Model Answer: %s\n", turn.ModelAnswer)
		fmt.Printf("Feedback: %s (Similarity: %s)\n", turn.Feedback, turn.Similarity)
	}
	fmt.Println("\n----------------------------")
}
