package cli

import (
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/usestring/privlabel/internal/index"
)

var searchCmd = &cobra.Command{
	Use:   "search <log-file>",
	Short: "Search the logged requests of a traffic log",
	Long: `Search logged requests by domain, method, query type, header name,
or free text over URLs and query text. Filters are ANDed.`,
	Example: `  privlabel search traffic.jsonl --domain api.example.com
  privlabel search traffic.jsonl --method POST --text weather`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadStore(args[0])
		if err != nil {
			return err
		}

		limit, _ := cmd.Flags().GetInt("limit")
		if limit == 0 {
			limit = cfg.DefaultSearchLimit
		}

		q := index.Query{}
		q.Domain, _ = cmd.Flags().GetString("domain")
		q.Method, _ = cmd.Flags().GetString("method")
		q.QueryType, _ = cmd.Flags().GetString("query-type")
		q.HeaderName, _ = cmd.Flags().GetString("header")
		q.Text, _ = cmd.Flags().GetString("text")

		matches := index.Build(st).Search(q, limit)

		data, err := json.MarshalIndent(matches, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().String("domain", "", "exact domain filter")
	searchCmd.Flags().String("method", "", "HTTP method filter")
	searchCmd.Flags().String("query-type", "", "query type tag filter")
	searchCmd.Flags().String("header", "", "header name filter")
	searchCmd.Flags().String("text", "", "free text over URLs and query text")
	searchCmd.Flags().Int("limit", 0, "maximum matches to return (default from config)")
}
