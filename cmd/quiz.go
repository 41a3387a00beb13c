package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/studypal/internal/quizui"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Start an interactive quiz session",
	RunE: func(cmd *cobra.Command, args []string) error {
		kpID, _ := cmd.Flags().GetInt64("kp")
		count, _ := cmd.Flags().GetInt("count")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		assistant := newAssistant(cmd.Context(), cmd, st)
		return quizui.Run(assistant, kpID, count)
	},
}

func init() {
	quizCmd.Flags().Int64("kp", 0, "Knowledge point id to quiz on (default: random)")
	quizCmd.Flags().IntP("count", "n", 3, "Number of questions")
}
