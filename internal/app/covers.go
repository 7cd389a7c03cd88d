package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/blackwell-systems/bookcase/internal/cache"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newCoversCmd() *cobra.Command {
	var (
		refresh bool
		prune   bool
	)

	cmd := &cobra.Command{
		Use:   "covers",
		Short: "Download cover images for offline use",
		Long: `Download the cover image of every book that has a cover URL into the local
cover cache (covers.dir). 'bookcase index' uses cached covers when present,
so the page works without a network connection.

Examples:
  bookcase covers
  bookcase covers --refresh    # download again even if cached
  bookcase covers --prune      # also delete covers of removed books`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			covers := cache.New(cfg.Covers.Dir)
			f := cache.NewFetcher(covers, cfg.Covers.Timeout, logger)

			rep, err := f.Sync(ctx, store.Projection(), refresh)
			if err != nil {
				return err
			}

			ok("%d downloaded, %d already cached, %d without a cover", rep.Fetched, rep.Cached, rep.Skipped)
			for id, ferr := range rep.Failed {
				title := id
				if b, found := store.Get(id); found {
					title = b.Title
				}
				warn("%s: %v", title, ferr)
			}

			if prune {
				keep := make(map[string]bool, store.Len())
				for _, b := range store.Books() {
					keep[b.ID] = true
				}
				n, err := covers.Prune(keep)
				if err != nil {
					return fmt.Errorf("pruning covers: %w", err)
				}
				if n > 0 {
					ok("Removed %d unused cover(s)", n)
				}
			}

			fmt.Fprintf(stdout, "  Cache: %s\n", color.HiBlackString(covers.Dir()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Download covers again even if cached")
	cmd.Flags().BoolVar(&prune, "prune", false, "Delete cached covers of books no longer in the library")

	return cmd
}

// localCovers maps book IDs to cached cover paths, relative to dir when
// possible so the generated page can be moved along with its covers.
func localCovers(covers *cache.Manager, dir string) map[string]string {
	out := map[string]string{}
	for _, b := range store.Books() {
		p, found := covers.Lookup(b.ID)
		if !found {
			continue
		}
		if rel, err := filepath.Rel(dir, p); err == nil {
			p = rel
		}
		out[b.ID] = filepath.ToSlash(p)
	}
	return out
}
