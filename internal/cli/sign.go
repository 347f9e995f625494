package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/cosmic-whispers/internal/model"
	"github.com/rcliao/cosmic-whispers/internal/zodiac"
)

func init() {
	cmd := &cobra.Command{
		Use:   "sign [YYYY-MM-DD]",
		Short: "Show the zodiac sign for a birth date",
		Long:  "Show the zodiac sign for a birth date. Without a date you are a Seeker.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runSign,
	}

	RootCmd.AddCommand(cmd)
}

type signResult struct {
	Sign  string `json:"sign"`
	Trait string `json:"trait"`
}

func runSign(cmd *cobra.Command, args []string) {
	var res signResult
	if len(args) == 0 {
		res.Sign = zodiac.Resolve(nil)
	} else {
		date, err := model.ParseBirthDate(args[0])
		if err != nil {
			exitErr("sign", err)
		}
		res.Sign = zodiac.Resolve(date)
	}
	res.Trait = zodiac.Trait(res.Sign)

	if textFormat() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", headingStyle.Render(res.Sign), res.Trait)
		return
	}
	b, _ := json.Marshal(res)
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}
