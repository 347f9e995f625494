package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/cosmic-whispers/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export history as JSON",
		Long:  "Export the reading history as a JSON array, newest first. The output can be fed to import.",
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	s, err := openStore(cfg, newLogger())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	b, _ := json.MarshalIndent(store.ExportAll(cmd.Context(), s), "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}
