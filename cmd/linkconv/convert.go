package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ryotapoi/linkconv/internal/core"
	"github.com/ryotapoi/linkconv/internal/vault"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		to    string
		links linkFlags
		scope scopeFlags
	)
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert links between wikilink and markdown notation",
		Example: `  linkconv convert --to markdown
  linkconv convert --to wikilink --folder notes --dry-run --diff
  linkconv convert --to markdown --file notes/Plan.md --link-format shortest-path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(scope.format); err != nil {
				return err
			}
			if to == "" {
				return errors.New("--to is required and must be 'wikilink' or 'markdown'")
			}
			notation, err := core.ParseNotation(to)
			if err != nil {
				return err
			}

			v, log, err := a.open(cmd, &links)
			if err != nil {
				return err
			}
			opts, err := coreOptions(v.Config)
			if err != nil {
				return err
			}

			rep, err := v.Run(cmd.Context(), vault.ConvertJob(notation, opts), scope.scope(), vault.RunOptions{
				DryRun:     scope.dryRun,
				Diff:       scope.diff,
				SkipTagged: scope.scope().Batch(),
			}, log)
			if err != nil {
				return err
			}
			return printReport(a.stdout, rep, scope.format)
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "target notation: wikilink or markdown (required)")
	links.register(cmd.Flags())
	scope.register(cmd.Flags())
	return cmd
}

func newReformatCmd(a *app) *cobra.Command {
	var (
		links linkFlags
		scope scopeFlags
	)
	cmd := &cobra.Command{
		Use:   "reformat",
		Short: "Rewrite link paths as relative, absolute or shortest paths",
		Example: `  linkconv reformat --link-format shortest-path
  linkconv reformat --link-format relative-path --folder projects --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(scope.format); err != nil {
				return err
			}
			v, log, err := a.open(cmd, &links)
			if err != nil {
				return err
			}
			opts, err := coreOptions(v.Config)
			if err != nil {
				return err
			}
			if opts.Format == core.FormatUnchanged {
				return errors.New("reformat needs a link format: pass --link-format or set final_link_format")
			}

			rep, err := v.Run(cmd.Context(), vault.ReformatJob(opts), scope.scope(), vault.RunOptions{
				DryRun:     scope.dryRun,
				Diff:       scope.diff,
				SkipTagged: scope.scope().Batch(),
			}, log)
			if err != nil {
				return err
			}
			return printReport(a.stdout, rep, scope.format)
		},
	}
	links.register(cmd.Flags())
	scope.register(cmd.Flags())
	return cmd
}
