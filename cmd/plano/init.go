package plano

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/app"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/config"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/service"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/store"
)

var initDemo bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local plano database and config",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile == "" {
			wrote, err := config.WriteDefault(app.DefaultConfigPath())
			if err != nil {
				return err
			}
			if wrote {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", app.DefaultConfigPath())
			}
		}
		return withStore(func(ctx context.Context, b store.Backend) error {
			if initDemo {
				seeded, err := seedDemo(ctx, b)
				if err != nil {
					return err
				}
				if seeded {
					fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d sample weight entries\n", len(service.SampleWeightData))
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized plano database at %s\n", resolveDBPath())
			return nil
		})
	},
}

// seedDemo writes the sample series only when no series is stored yet.
func seedDemo(ctx context.Context, b store.Backend) (bool, error) {
	if _, ok, err := b.Get(ctx, store.KeyWeightData); err != nil || ok {
		return false, err
	}
	if err := store.Save(ctx, b, store.KeyWeightData, service.SampleWeightData); err != nil {
		return false, fmt.Errorf("seed weight data: %w", err)
	}
	return true, nil
}

func init() {
	initCmd.Flags().BoolVar(&initDemo, "demo", false, "Seed the sample weight series when empty")
	rootCmd.AddCommand(initCmd)
}
