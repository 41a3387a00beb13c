package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/studypal/internal/store"
)

var chunkCmd = &cobra.Command{
	Use:   "chunk <id>",
	Short: "Show the original document text a knowledge point came from",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int64
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid chunk id %q: %w", args[0], err)
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		c, err := st.GetChunk(cmd.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("chunk %d not found", id)
			}
			return err
		}

		fmt.Printf("Source:  %s\n", c.SourcePath)
		fmt.Printf("Pages:   %d-%d\n\n", c.PageFrom, c.PageTo)
		fmt.Println(c.Content)
		return nil
	},
}
