package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/blogem/campus-feedback/server"
	"github.com/blogem/campus-feedback/services"
)

// summaryCmd prints the aggregate view as JSON
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the feedback summary as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, closeStore, err := server.OpenRepositories(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		records, err := repos.Feedback.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("%w: %w", services.ErrLoad, err)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(services.Summarize(records))
	},
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
