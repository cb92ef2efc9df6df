package main

import (
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ryotapoi/linkconv/internal/core"
)

// newTextCmd converts a piece of text (an editor selection) read from stdin
// as if it sat in the note --from, and writes the result to stdout.
func newTextCmd(a *app) *cobra.Command {
	var (
		to    string
		from  string
		links linkFlags
	)
	cmd := &cobra.Command{
		Use:   "text",
		Short: "Convert links in text read from stdin",
		Example: `  pbpaste | linkconv text --from notes/Plan.md --to markdown
  linkconv text --from Home.md --link-format shortest-path < selection.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" {
				return errors.New("--from is required")
			}
			v, _, err := a.open(cmd, &links)
			if err != nil {
				return err
			}
			source, err := v.Rel(from)
			if err != nil {
				return err
			}
			opts, err := coreOptions(v.Config)
			if err != nil {
				return err
			}

			data, err := io.ReadAll(a.stdin)
			if err != nil {
				return errors.Wrap(err, "read stdin")
			}
			text := string(data)

			if to == "" {
				if opts.Format == core.FormatUnchanged {
					return errors.New("pass --to, or --link-format to reformat paths")
				}
				_, err = io.WriteString(a.stdout, core.ReformatPaths(text, source, v, opts))
				return err
			}
			notation, err := core.ParseNotation(to)
			if err != nil {
				return err
			}
			_, err = io.WriteString(a.stdout, core.ConvertNotation(text, source, notation, v, opts))
			return err
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "target notation: wikilink or markdown")
	cmd.Flags().StringVar(&from, "from", "", "vault path of the note the text belongs to (required)")
	links.register(cmd.Flags())
	return cmd
}
