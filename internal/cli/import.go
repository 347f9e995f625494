package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/cosmic-whispers/internal/model"
	"github.com/rcliao/cosmic-whispers/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import history from JSON",
		Long:  "Import readings from JSON on stdin. Expects the format produced by export. " +
			"Readings are merged with the history by creation time and only the newest are kept.",
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		exitErr("read stdin", err)
	}

	var readings []model.AstrologyReading
	if err := json.Unmarshal(data, &readings); err != nil {
		exitErr("parse json", err)
	}

	cfg := loadConfig()
	s, err := openStore(cfg, newLogger())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	imported := store.Import(cmd.Context(), s, readings)

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"imported":%d}`+"\n", imported)
}
