package main

import (
	"github.com/spf13/cobra"

	"github.com/ryotapoi/linkconv/internal/index"
	"github.com/ryotapoi/linkconv/internal/logger"
	"github.com/ryotapoi/linkconv/internal/vault"
)

func newIndexCmd(a *app) *cobra.Command {
	var (
		links     linkFlags
		format    string
		stats     bool
		backlinks string
	)
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build the sqlite file index used with use_index",
		Long: `index walks the vault and records every file and every link in
.linkconv/index.sqlite. With use_index: true other commands read the file
list from it instead of walking the vault.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			if backlinks != "" {
				paths, err := index.Backlinks(a.vaultPath, backlinks)
				if err != nil {
					return err
				}
				return printPaths(a.stdout, paths, format)
			}
			if stats {
				st, err := index.ReadStats(a.vaultPath)
				if err != nil {
					return err
				}
				return printStats(a.stdout, st, format)
			}

			cfg, err := a.loadConfig(cmd, &links)
			if err != nil {
				return err
			}
			cfg.UseIndex = false
			log, err := logger.NewFromString(a.stderr, cfg.LogLevel)
			if err != nil {
				return err
			}
			v, err := vault.Open(a.vaultPath, cfg)
			if err != nil {
				return err
			}
			opts, err := coreOptions(cfg)
			if err != nil {
				return err
			}

			files := make([]string, 0, v.Len())
			for _, f := range v.Files() {
				files = append(files, f.Path)
			}
			st, err := index.Build(v.Root, files, opts)
			if err != nil {
				return err
			}
			log.Info("index built", "path", index.Path(v.Root), "files", st.Files, "links", st.Links)
			return printStats(a.stdout, st, format)
		},
	}
	links.register(cmd.Flags())
	cmd.Flags().StringVar(&format, "format", "text", "output format (json or text)")
	cmd.Flags().BoolVar(&stats, "stats", false, "print statistics of the existing index")
	cmd.Flags().StringVar(&backlinks, "backlinks", "", "list notes linking to this vault path")
	return cmd
}
