package cli

import (
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/usestring/privlabel/internal/traffic"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [log-file]",
	Short: "Print aggregate statistics for a traffic log",
	Long: `Print aggregate request and domain statistics for a traffic log.
Without an argument, the log named by TRAFFIC_LOG_FILE is summarized.`,
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

		sessionID := ""
		if len(st.Events) > 0 {
			sessionID = st.Events[0].Session()
		}
		rec := traffic.Summarize(st.Events, sessionID)

		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
