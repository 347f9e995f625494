package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a past reading",
		Args:  cobra.ExactArgs(1),
		Run:   runShow,
	}

	cmd.Flags().Bool("reveal", false, "Type the reading out section by section (text format)")

	RootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) {
	stream, _ := cmd.Flags().GetBool("reveal")
	if err := showReading(cmd, args[0], stream); err != nil {
		exitErr("show", err)
	}
}

// showReading writes the history reading with the given id. The controller
// is closed before it returns, including on error.
func showReading(cmd *cobra.Command, id string, stream bool) error {
	opt, wake := wakeOnChange()
	c, _, cleanup := newController(opt)
	defer cleanup()

	reading, err := c.SelectFromHistory(cmd.Context(), id)
	if err != nil {
		return err
	}

	switch {
	case textFormat() && stream:
		if err := streamReading(cmd.Context(), cmd.OutOrStdout(), c, wake); err != nil {
			return fmt.Errorf("reveal: %w", err)
		}
	case textFormat():
		printReading(cmd.OutOrStdout(), reading)
	default:
		b, _ := json.MarshalIndent(reading, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
	}
	return nil
}
