package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"

	"github.com/usestring/privlabel/internal/schema"
	"github.com/usestring/privlabel/internal/store"
)

var validateCmd = &cobra.Command{
	Use:   "validate <log-file>",
	Short: "Validate every record of a traffic log against the event schema",
	Long: `Validate a line-delimited traffic log record by record. Useful for
debugging hand-edited or foreign logs before analysis; the analyzer
itself skips malformed lines silently.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return &store.LoadError{Path: args[0], Err: err}
		}
		defer f.Close()

		var r io.Reader = f
		if strings.HasSuffix(args[0], ".gz") {
			gz, err := gzip.NewReader(f)
			if err != nil {
				return &store.LoadError{Path: args[0], Err: err}
			}
			defer gz.Close()
			r = gz
		}

		validator, err := schema.NewValidator()
		if err != nil {
			return err
		}

		// Record size is unbounded, so lines are read without a cap.
		var total, invalid int
		br := bufio.NewReader(r)
		for lineNo := 1; ; lineNo++ {
			line, readErr := br.ReadBytes('\n')
			if readErr != nil && readErr != io.EOF {
				return readErr
			}

			line = bytes.TrimSpace(line)
			if len(line) > 0 {
				total++
				result := validator.Validate(line)
				if !result.Valid {
					invalid++
					for _, msg := range result.Errors {
						fmt.Fprintf(cmd.OutOrStdout(), "line %d: %s\n", lineNo, msg)
					}
				}
			}

			if readErr == io.EOF {
				break
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d records checked, %d invalid\n", total, invalid)
		if invalid > 0 {
			return fmt.Errorf("%d invalid records", invalid)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
