package plano

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/clock"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/config"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/logging"
)

var (
	dbPath   string
	cfgFile  string
	logLevel string

	cfg config.Config
	clk clock.Clock = clock.System{}
)

var rootCmd = &cobra.Command{
	Use:           "plano",
	Short:         "plano tracks weight, meals and exercise toward a weight-loss goal",
	Long:          "plano is a local-first weight-loss tracker: weight trend, meal diary with photo calorie estimates, exercise log, and an offline copy of the web app shell.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(viper.New(), cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		level := cfg.Log.Level
		if logLevel != "" {
			level = logLevel
		}
		logging.Setup(logging.Params{Level: level, FileName: cfg.Log.File, ToStderr: cfg.Log.File != "", JSON: cfg.Log.JSON})
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default $XDG_CONFIG_HOME/plano/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}
