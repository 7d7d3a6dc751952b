package main

import (
	"fmt"
	"os"

	"github.com/PowerfulRI/realestate-arv-calculator/internal/analysis"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/report"
)

// writeResult renders the analysis in the requested format, to stdout or to
// the given file.
func writeResult(res *analysis.Result, format, outputPath string) error {
	var content []byte
	switch format {
	case "text", "":
		content = []byte(report.Text(res))
	case "markdown", "md":
		content = []byte(report.Markdown(res))
	case "json":
		data, err := report.JSON(res)
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		content = append(data, '\n')
	default:
		return fmt.Errorf("unknown format %q (want text, markdown, or json)", format)
	}

	if outputPath == "" {
		_, err := os.Stdout.Write(content)
		return err
	}
	if err := os.WriteFile(outputPath, content, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Printf("Report written to %s\n", outputPath)
	return nil
}
