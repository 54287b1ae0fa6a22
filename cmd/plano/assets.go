package plano

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/assetcache"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/logging"
)

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Manage the offline copy of the web app shell",
}

var (
	assetsBaseURL string
	assetsListen  string
)

func newAssetCache(sqldb *sql.DB) *assetcache.Cache {
	var fetcher assetcache.Fetcher
	if base := firstNonEmpty(assetsBaseURL, cfg.Assets.BaseURL); base != "" {
		fetcher = assetcache.NewHTTPFetcher(base)
	}
	return assetcache.New(assetcache.DefaultManifest(), assetcache.NewSQLiteStorage(sqldb), fetcher, clk)
}

var assetsInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Download every manifest entry into a new cache version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			c := newAssetCache(sqldb)
			if err := c.Install(cmd.Context()); err != nil {
				return err
			}
			m := c.Manifest()
			fmt.Fprintf(cmd.OutOrStdout(), "Installed %s (%d entries, digest %.12s)\n", m.Version, len(m.Entries), m.Digest())
			return nil
		})
	},
}

var assetsActivateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Delete every cache version except the current one",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			deleted, err := newAssetCache(sqldb).Activate(cmd.Context())
			for _, v := range deleted {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted cache version %s\n", v)
			}
			return err
		})
	},
}

var assetsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "List installed cache versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			c := newAssetCache(sqldb)
			versions, err := c.Status(cmd.Context())
			if err != nil {
				return err
			}
			t := newTable(cmd)
			t.AppendHeader(table.Row{"Version", "Installed", "Entries", "Current"})
			for _, v := range versions {
				current := ""
				if v.Version == c.Manifest().Version {
					current = "yes"
				}
				t.AppendRow(table.Row{v.Version, v.InstalledAt.Local().Format("2006-01-02 15:04"), v.Entries, current})
			}
			t.Render()
			return nil
		})
	},
}

var assetsGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Print a resource, from the cache when possible",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			resp, hit, err := newAssetCache(sqldb).Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			logging.Log.Debugf("asset %s served (cache hit: %v)", args[0], hit)
			_, err = cmd.OutOrStdout().Write(resp.Body)
			return err
		})
	},
}

var assetsServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the app shell, cache first, network on miss",
	RunE: func(cmd *cobra.Command, args []string) error {
		listen := assetsListen
		if listen == "" {
			listen = cfg.Assets.Listen
		}
		return withDB(func(sqldb *sql.DB) error {
			c := newAssetCache(sqldb)
			var miss http.Handler = http.NotFoundHandler()
			if base := firstNonEmpty(assetsBaseURL, cfg.Assets.BaseURL); base != "" {
				miss = assetcache.FetcherHandler(assetcache.NewHTTPFetcher(base))
			}
			srv := &http.Server{Addr: listen, Handler: c.Handler(miss), ReadHeaderTimeout: 10 * time.Second}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on http://%s\n", c.Manifest().Version, listen)

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	},
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func init() {
	assetsCmd.PersistentFlags().StringVar(&assetsBaseURL, "base-url", "", "Origin the app shell is fetched from (default assets.base_url)")
	assetsServeCmd.Flags().StringVar(&assetsListen, "listen", "", "Listen address (default assets.listen)")

	assetsCmd.AddCommand(assetsInstallCmd, assetsActivateCmd, assetsStatusCmd, assetsGetCmd, assetsServeCmd)
	rootCmd.AddCommand(assetsCmd)
}
