package assets

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"
)

//go:embed templates/practice-report.md.go.tmpl
var fallbackReportTemplate string

// ParseReportTemplate loads the practice report template, preferring an
// on-disk override at templatePath over the embedded default.
func ParseReportTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, fallbackReportTemplate)
}

func parseTemplateWithFallback(templatePath string, fallbackTemplate string) (*template.Template, error) {
	if _, err := os.Stat(templatePath); err == nil {
		fileName := filepath.Base(templatePath)
		tmpl, err := template.New(fileName).ParseFiles(templatePath)
		if err == nil {
			return tmpl, nil
		}
		slog.Warn("failed to parse a template override",
			slog.String("templatePath", templatePath),
			slog.Any("error", err),
		)
	}

	tmpl, err := template.New("practice-report.md.go.tmpl").Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("template.Parse() > %w", err)
	}
	return tmpl, nil
}
