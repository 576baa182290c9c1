package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blogem/campus-feedback/server"
)

// classifyCmd labels a single text with the configured classifier
var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Print the sentiment label and score of a text",
	Long: `Runs the configured classifier on the given text and prints the label and score.

Example:
  campus-feedback classify "Great library hours!"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		classifier, err := server.NewClassifier(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}

		result, err := classifier.Classify(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("classification failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", result.Label, result.Label.Emoji(), formatScore(result.Score))
		return nil
	},
}
