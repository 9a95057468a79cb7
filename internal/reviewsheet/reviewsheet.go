// Package reviewsheet prints due words to a Markdown or PDF sheet for reviewing offline.
package reviewsheet

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/mandolyte/mdtopdf"

	"github.com/at-ishikawa/wordbank/internal/review"
)

//go:embed templates/review-sheet.md.go.tmpl
var fallbackReviewSheetTemplate string

const fallbackTemplateName = "review-sheet.md.go.tmpl"

// Sheet is the data passed to the review sheet template.
type Sheet struct {
	Title       string
	GeneratedAt time.Time
	Cards       []Card
}

// Card is one word of the sheet.
type Card struct {
	Word          string
	Pronunciation string
	Definitions   []review.Definition
	DueAt         time.Time
	State         string
	Reps          int
	Lapses        int
}

// NewSheet builds a sheet of cards in the given order.
func NewSheet(title string, cards []review.ReviewCard, now time.Time) Sheet {
	sheet := Sheet{
		Title:       title,
		GeneratedAt: now.UTC(),
		Cards:       make([]Card, 0, len(cards)),
	}
	for _, c := range cards {
		sheet.Cards = append(sheet.Cards, Card{
			Word:          c.Word.Text,
			Pronunciation: c.Word.Pronunciation,
			Definitions:   c.Word.Definitions,
			DueAt:         c.Metadata.DueAt.UTC(),
			State:         c.Metadata.State.String(),
			Reps:          c.Metadata.Reps,
			Lapses:        c.Metadata.Lapses,
		})
	}
	return sheet
}

func parseTemplateWithFallback(templatePath string, logger *slog.Logger) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
		"inc":  func(i int) int { return i + 1 },
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			tmpl, err := template.New(filepath.Base(templatePath)).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			logger.Warn("failed to parse a template, using the embedded one",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackTemplateName).
		Funcs(funcMap).
		Parse(fallbackReviewSheetTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}

// Writer renders sheets into an output directory.
type Writer struct {
	outputDirectory string
	templatePath    string
	logger          *slog.Logger
}

// NewWriter creates a Writer. An empty templatePath uses the embedded template.
func NewWriter(outputDirectory, templatePath string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		outputDirectory: outputDirectory,
		templatePath:    templatePath,
		logger:          logger.With(slog.String("component", "reviewsheet")),
	}
}

// WriteMarkdown renders sheet as Markdown into output.
func (w *Writer) WriteMarkdown(output io.Writer, sheet Sheet) error {
	tmpl, err := parseTemplateWithFallback(w.templatePath, w.logger)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, sheet); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

// WriteFile writes sheet to <outputDirectory>/<name>.md and, if withPDF is set, converts it
// to <name>.pdf next to it. It returns the paths it wrote.
func (w *Writer) WriteFile(name string, sheet Sheet, withPDF bool) ([]string, error) {
	if err := os.MkdirAll(w.outputDirectory, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", w.outputDirectory, err)
	}

	markdownPath := filepath.Join(w.outputDirectory, name+".md")
	var builder strings.Builder
	if err := w.WriteMarkdown(&builder, sheet); err != nil {
		return nil, err
	}
	content := []byte(builder.String())
	if err := os.WriteFile(markdownPath, content, 0644); err != nil {
		return nil, fmt.Errorf("os.WriteFile(%s) > %w", markdownPath, err)
	}
	paths := []string{markdownPath}
	w.logger.Debug("wrote review sheet", slog.String("path", markdownPath), slog.Int("cards", len(sheet.Cards)))

	if !withPDF {
		return paths, nil
	}
	pdfPath, err := convertMarkdownToPDF(markdownPath, content)
	if err != nil {
		return paths, err
	}
	return append(paths, pdfPath), nil
}

// convertMarkdownToPDF writes content as a PDF next to markdownPath.
func convertMarkdownToPDF(markdownPath string, content []byte) (string, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}
	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"

	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}
	return pdfPath, nil
}
