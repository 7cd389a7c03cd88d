package app

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count read and unread books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := store.Stats()

			if jsonOut {
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(st)
			}

			header("── Library")
			fmt.Fprintf(stdout, "  Books:    %d\n", st.Total)
			fmt.Fprintf(stdout, "  Read:     %s\n", color.GreenString("%d", st.Read))
			fmt.Fprintf(stdout, "  Not read: %d\n", st.Unread)
			if st.Total > 0 {
				fmt.Fprintf(stdout, "  Progress: %d%%\n", st.Read*100/st.Total)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}
