package main

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ryotapoi/linkconv/internal/core"
	"github.com/ryotapoi/linkconv/internal/vault"
	"github.com/ryotapoi/linkconv/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		to       string
		links    linkFlags
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep converting notes as they are saved",
		Long: `watch applies a convert job (--to) or, without --to, a reformat job in the
configured link format to each note shortly after it is saved. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, log, err := a.open(cmd, &links)
			if err != nil {
				return err
			}
			opts, err := coreOptions(v.Config)
			if err != nil {
				return err
			}

			var job vault.Job
			switch {
			case to != "":
				notation, err := core.ParseNotation(to)
				if err != nil {
					return err
				}
				job = vault.ConvertJob(notation, opts)
			case opts.Format != core.FormatUnchanged:
				job = vault.ReformatJob(opts)
			default:
				return errors.New("pass --to, or --link-format to reformat paths")
			}

			handle := func(ctx context.Context, c watch.Change) error {
				if c.Removed {
					return v.Refresh()
				}
				if f, ok := v.Resolve(c.Path, ""); !ok || f.Path != c.Path {
					if err := v.Refresh(); err != nil {
						return err
					}
				}
				if v.Config.Excluded(c.Path) {
					return nil
				}
				_, err := v.Run(ctx, job, vault.Scope{File: c.Path}, vault.RunOptions{SkipTagged: true}, log)
				return err
			}

			w, err := watch.New(v.Root, debounce, handle, log)
			if err != nil {
				return err
			}
			log.Info("watching vault", "root", v.Root, "job", job.Name)
			if err := w.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "target notation: wikilink or markdown")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before a saved note is processed")
	links.register(cmd.Flags())
	return cmd
}
