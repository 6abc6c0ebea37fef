package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/mir-sim/backend/internal/models"
	"github.com/spf13/cobra"
)

// bankQuestion is one record of the combined raw bank: a question plus
// the year it belongs to.
type bankQuestion struct {
	Year int `json:"year"`
	models.Question
}

func splitCmd() *cobra.Command {
	var (
		bankPath string
		outDir   string
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split the combined question bank into per-year exam files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(bankPath, outDir)
		},
	}

	cmd.Flags().StringVarP(&bankPath, "bank", "b", "bank.json", "Combined question bank file")
	cmd.Flags().StringVarP(&outDir, "out", "o", "data", "Output data directory")

	return cmd
}

func runSplit(bankPath, outDir string) error {
	raw, err := os.ReadFile(bankPath)
	if err != nil {
		return fmt.Errorf("read bank: %w", err)
	}

	var bank []bankQuestion
	if err := json.Unmarshal(raw, &bank); err != nil {
		return fmt.Errorf("parse bank: %w", err)
	}
	if len(bank) == 0 {
		return fmt.Errorf("bank is empty")
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	byYear := make(map[int][]models.Question)
	for _, bq := range bank {
		if bq.Year == 0 {
			return fmt.Errorf("question %d has no year", bq.Number)
		}
		byYear[bq.Year] = append(byYear[bq.Year], normalizeQuestion(bq.Question))
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	manifest := models.ExamManifest{
		TotalExams: len(years),
		YearRange:  fmt.Sprintf("%d-%d", years[0], years[len(years)-1]),
	}

	for _, year := range years {
		questions := byYear[year]
		sort.Slice(questions, func(i, j int) bool { return questions[i].Number < questions[j].Number })

		imageCount := 0
		for _, q := range questions {
			imageCount += len(q.Images)
		}

		exam := models.Exam{
			Year:           year,
			TotalQuestions: len(questions),
			NumOptions:     len(questions[0].Answers),
			HasImages:      imageCount > 0,
			Questions:      questions,
		}

		name := fmt.Sprintf("exam-%d.json", year)
		if err := writeDocument(filepath.Join(outDir, name), exam); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d questions)\n", name, len(questions))

		manifest.TotalQuestions += len(questions)
		manifest.Exams = append(manifest.Exams, models.ExamManifestEntry{
			Year:           year,
			TotalQuestions: len(questions),
			NumOptions:     exam.NumOptions,
			HasImages:      exam.HasImages,
			ImageCount:     imageCount,
		})
	}

	if err := writeDocument(filepath.Join(outDir, "manifest.json"), manifest); err != nil {
		return err
	}
	fmt.Printf("wrote manifest.json (%d exams, %d questions)\n", manifest.TotalExams, manifest.TotalQuestions)

	return nil
}

var (
	imgTagPattern  = regexp.MustCompile(`<img[^>]*\bsrc="([^"]+)"[^>]*>`)
	htmlTagPattern = regexp.MustCompile(`<[^>]+>`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
)

// normalizeQuestion derives the plain-text fields from the raw HTML and
// pulls embedded image references out into the Images list.
func normalizeQuestion(q models.Question) models.Question {
	if q.TextHTML == "" {
		q.TextHTML = q.Text
	}

	for _, m := range imgTagPattern.FindAllStringSubmatch(q.TextHTML, -1) {
		if !containsString(q.Images, m[1]) {
			q.Images = append(q.Images, m[1])
		}
	}

	plain := imgTagPattern.ReplaceAllString(q.TextHTML, " ")
	plain = htmlTagPattern.ReplaceAllString(plain, " ")
	q.Text = strings.TrimSpace(whitespaceRun.ReplaceAllString(plain, " "))

	return q
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func writeDocument(path string, doc interface{}) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
