package plano

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/store"
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Export, import or reset stored data",
}

var (
	dataOut     string
	dataIn      string
	dataReplace bool
	dataYes     bool
)

var dataExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every document as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, b store.Backend) error {
			snap, err := store.Export(ctx, b)
			if err != nil {
				return err
			}
			if dataOut == "" || dataOut == "-" {
				return store.WriteSnapshot(cmd.OutOrStdout(), snap)
			}
			f, err := os.Create(dataOut)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer f.Close()
			if err := store.WriteSnapshot(f, snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d documents to %s\n", len(snap), dataOut)
			return nil
		})
	},
}

var dataImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import documents from a JSON export",
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if dataIn != "" && dataIn != "-" {
			f, err := os.Open(dataIn)
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer f.Close()
			r = f
		}
		snap, err := store.ReadSnapshot(r)
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, b store.Backend) error {
			if err := store.Import(ctx, b, snap, dataReplace); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d documents\n", len(snap))
			return nil
		})
	},
}

var dataResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all weight, meal, goal and exercise data",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !dataYes {
			return fmt.Errorf("refusing to reset without --yes")
		}
		return withStore(func(ctx context.Context, b store.Backend) error {
			if err := store.Reset(ctx, b); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All data removed")
			return nil
		})
	},
}

func init() {
	dataExportCmd.Flags().StringVar(&dataOut, "out", "", "Output file (default stdout)")
	dataImportCmd.Flags().StringVar(&dataIn, "in", "", "Input file (default stdin)")
	dataImportCmd.Flags().BoolVar(&dataReplace, "replace", false, "Remove documents missing from the import")
	dataResetCmd.Flags().BoolVar(&dataYes, "yes", false, "Confirm the reset")

	dataCmd.AddCommand(dataExportCmd, dataImportCmd, dataResetCmd)
	rootCmd.AddCommand(dataCmd)
}
