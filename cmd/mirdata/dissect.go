package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mir-sim/backend/internal/dissector"
	"github.com/mir-sim/backend/internal/models"
	"github.com/spf13/cobra"
)

func dissectCmd() *cobra.Command {
	var (
		dataDir string
		year    int
		pause   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "dissect",
		Short: "Classify one year's questions with the LLM tagging pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDissect(cmd.Context(), dataDir, year, pause)
		},
	}

	cmd.Flags().StringVarP(&dataDir, "data", "d", "data", "Data directory")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "Exam year to classify (required)")
	cmd.Flags().DurationVar(&pause, "pause", 500*time.Millisecond, "Pause between API calls")
	cmd.MarkFlagRequired("year")

	return cmd
}

func runDissect(ctx context.Context, dataDir string, year int, pause time.Duration) error {
	raw, err := os.ReadFile(filepath.Join(dataDir, fmt.Sprintf("exam-%d.json", year)))
	if err != nil {
		return fmt.Errorf("read exam: %w", err)
	}

	var exam models.Exam
	if err := json.Unmarshal(raw, &exam); err != nil {
		return fmt.Errorf("parse exam: %w", err)
	}

	d := dissector.NewDissector()
	fmt.Printf("classifying %d questions from %d with %s\n", len(exam.Questions), year, d.ModelName())

	var (
		classified   []models.DissectionQuestion
		promptTokens int
		outputTokens int
		failures     int
	)

	for i, q := range exam.Questions {
		if i > 0 {
			time.Sleep(pause)
		}

		dq, resp, err := d.Classify(ctx, year, q)
		if resp != nil {
			promptTokens += resp.PromptTokens
			outputTokens += resp.OutputTokens
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "question %d: %v\n", q.Number, err)
			failures++
			continue
		}

		classified = append(classified, *dq)
		fmt.Printf("  %d/%d %s — %s\n", i+1, len(exam.Questions), models.QuestionKey(year, q.Number), dq.Specialty)
	}

	if len(classified) == 0 {
		return fmt.Errorf("no questions classified (%d failures)", failures)
	}

	name := fmt.Sprintf("dissection-%d.json", year)
	if err := writeDocument(filepath.Join(dataDir, name), classified); err != nil {
		return err
	}

	fmt.Printf("wrote %s: %d classified, %d failed, %d prompt + %d output tokens\n",
		name, len(classified), failures, promptTokens, outputTokens)
	return nil
}
