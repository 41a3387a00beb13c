package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import study documents (.txt, .md) from a file or directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		assistant := newAssistant(cmd.Context(), cmd, st)
		res, err := assistant.ImportDocuments(cmd.Context(), args[0], subject)
		if err != nil {
			return err
		}

		fmt.Printf("Imported %d document(s), %d new chunk(s).\n", res.Documents, res.Chunks)
		if len(res.Skipped) > 0 {
			fmt.Printf("Skipped %d file(s) (unsupported type or empty).\n", len(res.Skipped))
		}
		if res.Chunks > 0 {
			fmt.Println("Next: run `studypal extract` to mine knowledge points.")
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringP("subject", "s", "", "Subject tag for the imported documents")
}
