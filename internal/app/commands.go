package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apylist/apylist/internal/blog"
	"github.com/apylist/apylist/internal/directory"
	apperr "github.com/apylist/apylist/internal/errors"
	"github.com/apylist/apylist/internal/export"
	"github.com/apylist/apylist/internal/httpx"
	"github.com/apylist/apylist/internal/model"
	"github.com/apylist/apylist/internal/server"
	"github.com/apylist/apylist/internal/source/defillama"
	"github.com/apylist/apylist/internal/viewstate"
	"github.com/apylist/apylist/internal/waitlist"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (s *runtimeState) newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the APY List HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(s.settings.LogLevel)
			if err != nil {
				return apperr.Wrap(apperr.CodeInternal, "build logger", err)
			}
			defer func() { _ = log.Sync() }()

			if err := os.MkdirAll(filepath.Dir(s.settings.StatePath), 0o755); err != nil {
				return apperr.Wrap(apperr.CodeInternal, "create data directory", err)
			}

			kv, err := viewstate.OpenSQLite(s.settings.StatePath, s.settings.StateLockPath)
			if err != nil {
				return apperr.Wrap(apperr.CodeInternal, "open state store", err)
			}
			defer func() { _ = kv.Close() }()
			state := viewstate.New(kv, log)

			signups, err := waitlist.Open(s.settings.WaitlistPath, s.settings.WaitlistLockPath)
			if err != nil {
				return apperr.Wrap(apperr.CodeInternal, "open waitlist store", err)
			}
			defer func() { _ = signups.Close() }()

			posts, err := blog.Load(s.settings.BlogDir)
			if err != nil {
				return apperr.Wrap(apperr.CodeInternal, "load blog posts", err)
			}

			source := defillama.New(httpx.New(s.settings.Timeout, 0), s.settings.YieldsBase, log)
			srv := server.New(s.settings, log, source, state, signups, posts)

			ctx, cancel := signalContext()
			defer cancel()

			log.Info("starting server",
				zap.String("addr", s.settings.Addr),
				zap.Int("blog_posts", len(posts)),
			)
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&s.flags.Addr, "addr", "", "Listen address (default :8080)")
	return cmd
}

// poolFlags mirrors the directory query parameters for one-shot CLI queries.
type poolFlags struct {
	search    string
	minAPY    float64
	maxAPY    float64
	minTVL    float64
	maxTVL    float64
	risk      []string
	chains    []string
	sortBy    string
	sortOrder string
	page      int
	all       bool
}

func (f poolFlags) params() directory.Params {
	p := directory.DefaultParams()
	p.Search = f.search
	p.MinAPY = f.minAPY
	p.MaxAPY = f.maxAPY
	p.MinTVL = f.minTVL
	p.MaxTVL = f.maxTVL
	p.Risk = f.risk
	p.Chains = f.chains
	if f.sortBy != "" {
		p.SortBy = f.sortBy
	}
	if f.sortOrder != "" {
		p.SortOrder = f.sortOrder
	}
	if f.page >= 1 {
		p.Page = f.page
	}
	return p
}

func registerPoolFlags(cmd *cobra.Command, f *poolFlags) {
	cmd.Flags().StringVar(&f.search, "search", "", "Substring match on name and provider")
	cmd.Flags().Float64Var(&f.minAPY, "min-apy", directory.DefaultMinAPY, "Minimum APY percentage")
	cmd.Flags().Float64Var(&f.maxAPY, "max-apy", directory.DefaultMaxAPY, "Maximum APY percentage (0 = unbounded)")
	cmd.Flags().Float64Var(&f.minTVL, "min-tvl", directory.DefaultMinTVL, "Minimum TVL in USD")
	cmd.Flags().Float64Var(&f.maxTVL, "max-tvl", directory.DefaultMaxTVL, "Maximum TVL in USD (0 = unbounded)")
	cmd.Flags().StringSliceVar(&f.risk, "risk", nil, "Risk levels to include (low, medium, high, very high)")
	cmd.Flags().StringSliceVar(&f.chains, "chain", nil, "Chains to include")
	cmd.Flags().StringVar(&f.sortBy, "sort-by", "", "Sort key: apy, tvl, or name")
	cmd.Flags().StringVar(&f.sortOrder, "sort-order", "", "Sort order: asc or desc")
}

func (s *runtimeState) newPoolsCommand() *cobra.Command {
	var flags poolFlags
	cmd := &cobra.Command{
		Use:   "pools",
		Short: "Query the yield pool directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := s.fetchSnapshot(cmd)
			if err != nil {
				return err
			}
			if flags.all {
				items := directory.RunAll(snap.Items, flags.params())
				return s.emitSuccess(trimRootPath(cmd.CommandPath()), items, snap.Status)
			}
			result := directory.Run(snap.Items, flags.params())
			return s.emitSuccess(trimRootPath(cmd.CommandPath()), result, snap.Status)
		},
	}
	registerPoolFlags(cmd, &flags)
	cmd.Flags().IntVar(&flags.page, "page", 1, "Page number (1-based)")
	cmd.Flags().BoolVar(&flags.all, "all", false, "Return all matching pools without pagination")
	return cmd
}

func (s *runtimeState) newExportCommand() *cobra.Command {
	var flags poolFlags
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export matching pools as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := s.fetchSnapshot(cmd)
			if err != nil {
				return err
			}
			items := directory.RunAll(snap.Items, flags.params())

			w := s.runner.stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return apperr.Wrap(apperr.CodeInternal, "create output file", err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}
			if err := export.WriteCSV(w, items); err != nil {
				return apperr.Wrap(apperr.CodeInternal, "write csv", err)
			}
			if outPath != "" {
				_, _ = fmt.Fprintf(s.runner.stderr, "wrote %d pools to %s\n", len(items), outPath)
			}
			return nil
		},
	}
	registerPoolFlags(cmd, &flags)
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write CSV to a file instead of stdout")
	return cmd
}

// fetchSnapshot pulls one snapshot for a CLI query. Unlike the server, the
// CLI reports upstream failure as an error: an empty file or table with exit
// code 0 would be indistinguishable from a genuinely empty directory.
func (s *runtimeState) fetchSnapshot(cmd *cobra.Command) (model.Snapshot, error) {
	source := defillama.New(httpx.New(s.settings.Timeout, 0), s.settings.YieldsBase, zap.NewNop())
	snap := source.Fetch(cmd.Context())
	if snap.Status != model.SourceOK {
		return model.Snapshot{}, apperr.New(apperr.CodeUnavailable, "yields upstream unavailable")
	}
	return snap, nil
}
