package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var kpsCmd = &cobra.Command{
	Use:   "kps",
	Short: "List extracted knowledge points",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		kps, err := st.ListKnowledgePoints(cmd.Context(), subject, limit)
		if err != nil {
			return err
		}
		if len(kps) == 0 {
			fmt.Println("No knowledge points yet. Run `studypal import` and `studypal extract` first.")
			return nil
		}

		fmt.Printf("%-5s  %-12s  %-16s  %-8s  %s\n", "ID", "Subject", "Topic", "Chunk", "Knowledge Point")
		fmt.Println(strings.Repeat("─", 100))
		for _, kp := range kps {
			chunk := "-"
			if kp.SourceChunkID != 0 {
				chunk = fmt.Sprintf("%d", kp.SourceChunkID)
			}
			fmt.Printf("%-5d  %-12s  %-16s  %-8s  %s\n",
				kp.ID, truncate(kp.Subject, 12), truncate(kp.Topic, 16), chunk, truncate(kp.KP, 50))
		}
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func init() {
	kpsCmd.Flags().StringP("subject", "s", "", "Only list points for this subject")
	kpsCmd.Flags().IntP("limit", "n", 20, "Maximum number of points to show")
}
