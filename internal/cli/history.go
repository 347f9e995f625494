package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/cosmic-whispers/internal/zodiac"
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past readings, newest first",
		Run:   runHistory,
	}

	cmd.Flags().IntP("limit", "n", 0, "Max results (0 for all)")
	cmd.Flags().Bool("ids-only", false, "Only output reading ids")

	RootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	idsOnly, _ := cmd.Flags().GetBool("ids-only")

	c, _, cleanup := newController()
	defer cleanup()

	readings := c.History(cmd.Context())
	if limit > 0 && len(readings) > limit {
		readings = readings[:limit]
	}

	out := cmd.OutOrStdout()
	switch {
	case idsOnly:
		for _, r := range readings {
			fmt.Fprintln(out, r.ID)
		}
	case textFormat():
		fmt.Fprintln(out, headingStyle.Render("Past Readings"))
		if len(readings) == 0 {
			fmt.Fprintln(out, dimStyle.Render("No previous readings found in the cosmic archives."))
			return
		}
		for _, r := range readings {
			fmt.Fprintf(out, "%s  %s  %-12s %-22s %s\n",
				r.ID,
				r.CreatedAt().Format("Jan 2, 2006"),
				zodiac.Resolve(r.UserDetails.BirthDate),
				r.UserDetails.ReadingType.Label(),
				r.UserDetails.BirthLocation)
		}
	default:
		b, _ := json.MarshalIndent(readings, "", "  ")
		fmt.Fprintln(out, string(b))
	}
}
