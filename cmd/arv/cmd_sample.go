package main

import (
	"github.com/spf13/cobra"

	"github.com/PowerfulRI/realestate-arv-calculator/internal/analysis"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/config"
)

var sampleFlags struct {
	format string
	output string
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Run the analysis on built-in sample data",
	Long: `Run the full analysis pipeline on a built-in sample property and its
comparable sales. Useful as a smoke test and to see the report formats
without a database or request file.`,
	Args: cobra.NoArgs,
	RunE: runSample,
}

func init() {
	f := sampleCmd.Flags()
	f.StringVarP(&sampleFlags.format, "format", "f", "text", "Output format: text, markdown, or json")
	f.StringVarP(&sampleFlags.output, "output", "o", "", "Write the report to a file instead of stdout")
}

func runSample(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(rootFlags.config)
	if err != nil {
		return err
	}
	res, err := analysis.Run(sampleRequest(), cfg)
	if err != nil {
		return err
	}
	return writeResult(res, sampleFlags.format, sampleFlags.output)
}
