package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ryotapoi/linkconv/internal/config"
	"github.com/ryotapoi/linkconv/internal/core"
	"github.com/ryotapoi/linkconv/internal/logger"
	"github.com/ryotapoi/linkconv/internal/vault"
)

// app carries the process streams and the global flags.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	vaultPath string
	logLevel  string
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{stdin: stdin, stdout: stdout, stderr: stderr}
}

// linkFlags override config keys for one invocation.
type linkFlags struct {
	linkFormat string
	excludes   []string
	skipCode   bool
	keepMtime  bool
}

func (f *linkFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.linkFormat, "link-format", "", "final link format: not-change, relative-path, absolute-path or shortest-path (default from config)")
	fs.StringSliceVar(&f.excludes, "exclude", nil, "glob of vault paths to ignore (repeatable)")
	fs.BoolVar(&f.skipCode, "skip-code", false, "ignore links inside code spans and code blocks")
	fs.BoolVar(&f.keepMtime, "keep-mtime", false, "keep the modification time of rewritten notes")
}

// scopeFlags select the documents of a batch and how it is reported.
type scopeFlags struct {
	file   string
	folder string
	dryRun bool
	diff   bool
	format string
}

func (f *scopeFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.file, "file", "", "convert a single note (vault-relative or absolute path)")
	fs.StringVar(&f.folder, "folder", "", "convert every note under a folder")
	fs.BoolVar(&f.dryRun, "dry-run", false, "show what would change without writing")
	fs.BoolVar(&f.diff, "diff", false, "print a unified diff for each changed note")
	fs.StringVar(&f.format, "format", "text", "output format (json or text)")
}

func (f *scopeFlags) scope() vault.Scope {
	return vault.Scope{File: f.file, Folder: f.folder}
}

// loadConfig merges the config files with the flags that were set.
func (a *app) loadConfig(cmd *cobra.Command, f *linkFlags) (*config.Config, error) {
	cfg, err := config.Load(a.vaultPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("link-format") {
		cfg.FinalLinkFormat = f.linkFormat
	}
	if flags.Changed("skip-code") {
		cfg.SkipCode = f.skipCode
	}
	if flags.Changed("keep-mtime") {
		cfg.KeepMtime = f.keepMtime
	}
	if err := cfg.AddExcludes(f.excludes); err != nil {
		return nil, err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// open loads the config and the vault, and builds the logger.
func (a *app) open(cmd *cobra.Command, f *linkFlags) (*vault.Vault, *logger.Logger, error) {
	cfg, err := a.loadConfig(cmd, f)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.NewFromString(a.stderr, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	log.ConfigLoaded(cfg.Sources, cfg.FinalLinkFormat)

	v, err := vault.Open(a.vaultPath, cfg)
	if err != nil {
		return nil, nil, err
	}
	if cfg.UseIndex && !v.FromIndex {
		log.Warn("no index found, walking the vault", "hint", "run 'linkconv index'")
	}
	return v, log, nil
}

// coreOptions returns the per-call core options of cfg.
func coreOptions(cfg *config.Config) (core.Options, error) {
	format, err := cfg.Format()
	if err != nil {
		return core.Options{}, err
	}
	return core.Options{Format: format, SkipCode: cfg.SkipCode}, nil
}
