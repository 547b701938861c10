package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/usestring/privlabel/internal/compare"
	"github.com/usestring/privlabel/internal/report"
	"github.com/usestring/privlabel/internal/store"
)

var compareCmd = &cobra.Command{
	Use:   "compare <local-log> <cloud-log>",
	Short: "Compare the privacy exposure of two traffic logs",
	Long: `Run the full analysis pipeline over two traffic logs and produce a
structured diff. The first log is reported as the local system, the
second as the cloud system.`,
	Example: `  privlabel compare traffic_log_local.jsonl traffic_log_cloud.jsonl
  privlabel compare local.jsonl cloud.jsonl -o comparison.json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ld := loader
		if ld == nil {
			var err error
			if ld, err = store.NewCachingLoader(2); err != nil {
				return err
			}
		}

		result, err := compare.Files(args[0], args[1], ld, analysisConfig(), time.Now())
		if err != nil {
			return err
		}

		report.RenderComparison(cmd.OutOrStdout(), result)

		outPath, _ := cmd.Flags().GetString("output")
		if outPath != "" {
			if err := report.WriteJSON(outPath, result); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nComparison exported to: %s\n", outPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringP("output", "o", "", "comparison output path (optional)")
}
