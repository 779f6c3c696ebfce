package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/diegoavarela/warren-sub012/internal/config"
)

func newInitCommand() *cobra.Command {
	var localeTag string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a warren workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, localeTag)
		},
	}

	cmd.Flags().StringVar(&localeTag, "locale", "en-US", "default locale for uploaded sheets")

	return cmd
}

func runInit(dir, localeTag string) error {
	for _, d := range []string{"logs", "uploads"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(localeTag)
	if err := config.Save(filepath.Join(dir, "warren.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Initialized warren workspace at %s\n", dir)
	return nil
}
