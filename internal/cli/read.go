package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/cosmic-whispers/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Request a reading",
		Long:  "Share your birth details with Madame Nebula and receive a reading. The reading is saved to history.",
		Run:   runRead,
	}

	addDetailFlags(cmd)
	cmd.Flags().Bool("reveal", false, "Type the reading out section by section (text format)")

	cmd.MarkFlagRequired("date")
	cmd.MarkFlagRequired("location")

	RootCmd.AddCommand(cmd)
}

func addDetailFlags(cmd *cobra.Command) {
	cmd.Flags().String("date", "", "Birth date, YYYY-MM-DD")
	cmd.Flags().String("time", "12:00", "Birth time, HH:MM")
	cmd.Flags().StringP("location", "l", "", "Birth location, e.g. \"Springfield, USA\"")
	cmd.Flags().StringP("type", "t", string(model.ReadingQuick), "Reading type: quick, full, deep-dive, compatibility")
}

// detailsFromFlags builds UserDetails from the detail flags.
func detailsFromFlags(cmd *cobra.Command) (model.UserDetails, error) {
	dateStr, _ := cmd.Flags().GetString("date")
	birthTime, _ := cmd.Flags().GetString("time")
	location, _ := cmd.Flags().GetString("location")
	typeStr, _ := cmd.Flags().GetString("type")

	date, err := model.ParseBirthDate(dateStr)
	if err != nil {
		return model.UserDetails{}, err
	}
	rt, err := model.ParseReadingType(typeStr)
	if err != nil {
		return model.UserDetails{}, err
	}
	return model.UserDetails{
		BirthDate:     date,
		BirthTime:     strings.TrimSpace(birthTime),
		BirthLocation: strings.TrimSpace(location),
		ReadingType:   rt,
	}, nil
}

func runRead(cmd *cobra.Command, args []string) {
	details, err := detailsFromFlags(cmd)
	if err != nil {
		exitErr("read", err)
	}
	stream, _ := cmd.Flags().GetBool("reveal")

	if err := readReading(cmd, details, stream); err != nil {
		exitErr("read", err)
	}
}

// readReading submits details and writes the reading. The controller is
// closed before it returns, including on error.
func readReading(cmd *cobra.Command, details model.UserDetails, stream bool) error {
	opt, wake := wakeOnChange()
	c, _, cleanup := newController(opt)
	defer cleanup()

	if textFormat() {
		fmt.Fprintln(os.Stderr, dimStyle.Render("Madame Nebula gazes into the crystal ball..."))
	}

	reading, err := c.Submit(cmd.Context(), details)
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
