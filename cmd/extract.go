package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/studypal/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract knowledge points from imported documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		assistant := newAssistant(cmd.Context(), cmd, st)

		fmt.Println("Extracting knowledge points...")
		n, err := assistant.ExtractKnowledgePoints(cmd.Context(), subject)
		if err != nil {
			if errors.Is(err, extract.ErrNoChunks) {
				fmt.Println("No documents imported yet. Run `studypal import <path>` first.")
				return nil
			}
			return err
		}

		fmt.Printf("Extracted %d knowledge point(s).\n", n)
		if n > 0 {
			fmt.Println("Next: run `studypal quiz` to get quizzed.")
		}
		return nil
	},
}

func init() {
	extractCmd.Flags().StringP("subject", "s", "", "Only extract from documents with this subject")
}
