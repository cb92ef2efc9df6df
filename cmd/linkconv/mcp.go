package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/ryotapoi/linkconv/internal/core"
	"github.com/ryotapoi/linkconv/internal/vault"
)

func newMCPCmd(a *app) *cobra.Command {
	var links linkFlags
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve link conversion tools over MCP (stdio)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, log, err := a.open(cmd, &links)
			if err != nil {
				return err
			}
			opts, err := coreOptions(v.Config)
			if err != nil {
				return err
			}
			log.Info("mcp server starting", "vault", v.Root, "files", v.Len())
			return server.ServeStdio(newMCPServer(v, opts))
		},
	}
	links.register(cmd.Flags())
	return cmd
}

func newMCPServer(v *vault.Vault, opts core.Options) *server.MCPServer {
	s := server.NewMCPServer(
		"linkconv",
		version,
		server.WithToolCapabilities(false),
	)

	convertTool := mcp.NewTool("convert_links",
		mcp.WithDescription("Convert the links of a Markdown text between [[wikilink]] and [markdown](link.md) notation. Links are resolved against the vault as if the text sat in source_path."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Markdown text to convert"),
		),
		mcp.WithString("source_path",
			mcp.Required(),
			mcp.Description("Vault-relative path of the note the text belongs to"),
		),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Target notation"),
			mcp.Enum("wikilink", "markdown"),
		),
		mcp.WithString("link_format",
			mcp.Description("Path style of resolved links (default from config)"),
			mcp.Enum("not-change", "relative-path", "absolute-path", "shortest-path"),
		),
	)
	s.AddTool(convertTool, handleConvertLinks(v, opts))

	reformatTool := mcp.NewTool("reformat_links",
		mcp.WithDescription("Rewrite the paths of resolvable links in a Markdown text as relative, absolute or shortest paths, keeping each link's notation."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Markdown text to reformat"),
		),
		mcp.WithString("source_path",
			mcp.Required(),
			mcp.Description("Vault-relative path of the note the text belongs to"),
		),
		mcp.WithString("link_format",
			mcp.Required(),
			mcp.Description("Path style to write"),
			mcp.Enum("relative-path", "absolute-path", "shortest-path"),
		),
	)
	s.AddTool(reformatTool, handleReformatLinks(v, opts))

	return s
}

// toolInput reads the arguments shared by both tools.
func toolInput(v *vault.Vault, request mcp.CallToolRequest, opts core.Options) (text, source string, _ core.Options, errResult *mcp.CallToolResult) {
	text, err := request.RequireString("text")
	if err != nil {
		return "", "", opts, mcp.NewToolResultError("text is required")
	}
	source, err = request.RequireString("source_path")
	if err != nil {
		return "", "", opts, mcp.NewToolResultError("source_path is required")
	}
	source, err = v.Rel(source)
	if err != nil {
		return "", "", opts, mcp.NewToolResultError(err.Error())
	}
	if f := request.GetString("link_format", ""); f != "" {
		format, err := core.ParseFormatPreference(f)
		if err != nil {
			return "", "", opts, mcp.NewToolResultError(err.Error())
		}
		opts.Format = format
	}
	return text, source, opts, nil
}

func handleConvertLinks(v *vault.Vault, defaults core.Options) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, source, opts, errResult := toolInput(v, request, defaults)
		if errResult != nil {
			return errResult, nil
		}
		to, err := request.RequireString("to")
		if err != nil {
			return mcp.NewToolResultError("to is required"), nil
		}
		notation, err := core.ParseNotation(to)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid notation: %v", err)), nil
		}
		return mcp.NewToolResultText(core.ConvertNotation(text, source, notation, v, opts)), nil
	}
}

func handleReformatLinks(v *vault.Vault, defaults core.Options) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, source, opts, errResult := toolInput(v, request, defaults)
		if errResult != nil {
			return errResult, nil
		}
		if opts.Format == core.FormatUnchanged {
			return mcp.NewToolResultError("link_format must be relative-path, absolute-path or shortest-path"), nil
		}
		return mcp.NewToolResultText(core.ReformatPaths(text, source, v, opts)), nil
	}
}
