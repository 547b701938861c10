package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/usestring/privlabel/internal/analyzer"
	"github.com/usestring/privlabel/internal/label"
	"github.com/usestring/privlabel/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report [log-file]",
	Short: "Analyze a traffic log and export a privacy report",
	Long: `Analyze a traffic log, print the privacy label summary, and write
the full privacy report document to disk. Without an argument, the log
named by TRAFFIC_LOG_FILE is analyzed.`,
	Example: `  privlabel report traffic_log_local.jsonl
  privlabel report traffic_log_cloud.jsonl -o cloud_report.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logPath := cfg.TrafficLogFile
		if len(args) > 0 {
			logPath = args[0]
		}

		st, err := loadStore(logPath)
		if err != nil {
			return err
		}

		analysis := analyzer.New(st, analysisConfig()).Analyze()
		lbl := label.Generate(analysis)

		now := time.Now()
		outPath, _ := cmd.Flags().GetString("output")
		if outPath == "" {
			outPath = fmt.Sprintf("privacy_report_%s.json", now.Format("20060102_150405"))
		}

		doc := report.Build(logPath, analysis, lbl, now)
		if err := report.WriteJSON(outPath, doc); err != nil {
			return err
		}

		report.Render(cmd.OutOrStdout(), lbl)
		fmt.Fprintf(cmd.OutOrStdout(), "\nPrivacy report exported to: %s\n", outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringP("output", "o", "", "report output path (default: privacy_report_<timestamp>.json)")
}
