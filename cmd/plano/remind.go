package plano

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/app"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/logging"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/scheduler"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/service"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Print a motivational quote",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "%q\n", service.Quote(cmd.Context(), newSuggester()))
		return nil
	},
}

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run the daily quote and hourly hydration reminders until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if cfg.Log.File == "" {
			level := cfg.Log.Level
			if logLevel != "" {
				level = logLevel
			}
			logging.Setup(logging.Params{Level: level, FileName: remindLogFile(), ToStderr: true, JSON: cfg.Log.JSON})
		}

		suggester := newSuggester()
		var mu sync.Mutex
		s := scheduler.New(scheduler.Config{
			QuoteHour:     scheduler.Hour(scheduler.DefaultQuoteHour),
			ReminderTexts: []string{service.HydrationReminder, service.WalkReminder},
			Quote:         func(ctx context.Context) string { return service.Quote(ctx, suggester) },
			FallbackQuote: service.DefaultQuote,
			Clock:         clk,
			Notify: func(e scheduler.Event) {
				mu.Lock()
				defer mu.Unlock()
				printEvent(cmd, e)
			},
		})
		if err := s.Start(ctx); err != nil {
			return err
		}
		<-ctx.Done()
		s.Stop()
		return nil
	},
}

// remindLogFile is where the long-running reminder loop keeps its log.
func remindLogFile() string {
	if cfg.Log.File != "" {
		return cfg.Log.File
	}
	return app.DefaultLogPath()
}

func printEvent(cmd *cobra.Command, e scheduler.Event) {
	stamp := e.At.Format("15:04")
	switch e.Kind {
	case scheduler.QuoteRefreshed:
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] Frase do Dia: %q\n", stamp, strings.Join(e.Texts, " "))
	case scheduler.ReminderShown:
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", stamp, strings.Join(e.Texts, " | "))
	case scheduler.ReminderHidden:
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] (lembrete terminado)\n", stamp)
	}
}

func init() {
	rootCmd.AddCommand(quoteCmd, remindCmd)
}
