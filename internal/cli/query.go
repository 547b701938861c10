package cli

import (
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/usestring/privlabel/internal/query"
)

var queryCmd = &cobra.Command{
	Use:   "query <log-file> <jq-expression>",
	Short: "Run a jq expression over the events of a traffic log",
	Long: `Run a jq expression against every event record of a traffic log, in
log order. Each record is presented as a plain JSON object.`,
	Example: `  privlabel query traffic.jsonl '.domain'
  privlabel query traffic.jsonl 'select(.type == "request" and (.is_localhost | not)) | .url'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadStore(args[0])
		if err != nil {
			return err
		}

		limit, _ := cmd.Flags().GetInt("limit")
		if limit == 0 {
			limit = cfg.DefaultQueryLimit
		}
		dedupe, _ := cmd.Flags().GetBool("dedupe")

		result, err := query.NewEngine().Events(st, args[1], dedupe, limit)
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().Int("limit", 0, "maximum values to return (default from config)")
	queryCmd.Flags().Bool("dedupe", false, "deduplicate identical values")
}
