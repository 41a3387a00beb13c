package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/studypal/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export the mistake log as a Markdown review document",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		path, err := report.Export(cmd.Context(), st, dir)
		if err != nil {
			return err
		}
		fmt.Printf("Mistake report written to %s\n", path)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringP("dir", "d", ".", "Directory to write the report into")
}
