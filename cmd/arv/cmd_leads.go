package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PowerfulRI/realestate-arv-calculator/internal/report"
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "List saved leads",
	Long:  "List properties saved to the leads file with the headline numbers from their last analysis.",
	Args:  cobra.NoArgs,
	RunE:  runLeads,
}

func runLeads(cmd *cobra.Command, args []string) error {
	leads, err := loadLeads()
	if err != nil {
		return fmt.Errorf("load leads: %w", err)
	}
	if len(leads) == 0 {
		fmt.Println("No leads saved yet. Use `arv analyze --save` to add one.")
		return nil
	}

	fmt.Printf("%-40s %12s %9s %5s %-9s %s\n", "ADDRESS", "ARV", "ROI", "RISK", "CONF", "ANALYZED")
	for _, l := range leads {
		fmt.Printf("%-40s %12s %8.2f%% %5.0f %-9s %s\n",
			l.Address, report.Currency(l.ARV), l.ROIPercent, l.RiskScore,
			l.Confidence, l.AnalyzedAt.Format("2006-01-02"))
	}
	return nil
}
