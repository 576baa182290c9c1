package main

import (
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/blogem/campus-feedback/models"
	"github.com/blogem/campus-feedback/server"
	"github.com/blogem/campus-feedback/services"
)

var (
	exportOut        string
	exportSentiments []string
	exportCategories []string
)

// exportCmd writes the stored feedback as CSV
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored feedback as CSV",
	Long: `Writes the feedback in the configured store as CSV with the columns
name, category, feedback, sentiment, confidence, timestamp, oldest first.

Example:
  campus-feedback export --out feedback.csv --sentiment Negative`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, closeStore, err := server.OpenRepositories(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		filter := models.ParseAdminFilter(url.Values{
			"sentiment": exportSentiments,
			"category":  exportCategories,
			"sort":      {string(models.SortByTimestamp)},
			"order":     {"asc"},
		})

		var w io.Writer = cmd.OutOrStdout()
		if exportOut != "" && exportOut != "-" {
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", exportOut, err)
			}
			defer f.Close()
			w = f
		}

		admin := services.NewAdminService(repos.Feedback, repos.Audit, logger)
		n, err := admin.ExportCSV(cmd.Context(), w, filter)
		if err != nil {
			return err
		}

		if exportOut != "" && exportOut != "-" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d feedback entries to %s\n", n, exportOut)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringSliceVar(&exportSentiments, "sentiment", nil, "only export these sentiments")
	exportCmd.Flags().StringSliceVar(&exportCategories, "category", nil, "only export these categories")
}
