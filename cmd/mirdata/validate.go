package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mir-sim/backend/internal/content"
	"github.com/spf13/cobra"
)

func validateCmd() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Schema-check every document in a data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), dataDir)
		},
	}

	cmd.Flags().StringVarP(&dataDir, "data", "d", "data", "Data directory")

	return cmd
}

func runValidate(ctx context.Context, dataDir string) error {
	loader := content.NewLoader(dataDir, true)
	failures := 0

	manifest, err := loader.Manifest(ctx)
	if err != nil {
		return fmt.Errorf("manifest.json: %w", err)
	}
	fmt.Printf("manifest.json ok (%d exams)\n", manifest.TotalExams)

	for _, entry := range manifest.Exams {
		exam, err := loader.Exam(ctx, entry.Year)
		if err != nil {
			fmt.Fprintf(os.Stderr, "exam-%d.json: %v\n", entry.Year, err)
			failures++
			continue
		}
		if exam.TotalQuestions != len(exam.Questions) {
			fmt.Fprintf(os.Stderr, "exam-%d.json: totalQuestions %d but %d questions\n",
				entry.Year, exam.TotalQuestions, len(exam.Questions))
			failures++
			continue
		}
		fmt.Printf("exam-%d.json ok (%d questions)\n", entry.Year, len(exam.Questions))

		questions, err := loader.Dissection(ctx, entry.Year)
		if err != nil {
			// Dissections trail the exam files; missing is fine
			continue
		}
		fmt.Printf("dissection-%d.json ok (%d questions)\n", entry.Year, len(questions))
	}

	if questions, err := loader.ReviewQuestions(ctx); err == nil {
		fmt.Printf("review-all.json ok (%d questions)\n", len(questions))
	}
	if similar, err := loader.Similar(ctx); err == nil {
		fmt.Printf("review-similar.json ok (%d keys)\n", len(similar))
	}

	if failures > 0 {
		return fmt.Errorf("%d document(s) failed validation", failures)
	}
	fmt.Println("all documents valid")
	return nil
}
