package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/cosmic-whispers/internal/model"
	"github.com/rcliao/cosmic-whispers/internal/store"
	"github.com/rcliao/cosmic-whispers/internal/zodiac"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show history statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	s, err := openStore(cfg, newLogger())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	path := cfg.DBPath
	if ephemeral {
		path = ""
	}
	stats := store.ComputeStats(cmd.Context(), s, path, func(d model.UserDetails) string {
		return zodiac.Resolve(d.BirthDate)
	})

	b, _ := json.MarshalIndent(stats, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}
