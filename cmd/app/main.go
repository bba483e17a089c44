package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/quizbook/internal"
	pkgconfig "github.com/starford/quizbook/pkg/config"
)

var version = "dev"

type entrypoint func(ctx context.Context, opts ...internal.Option) error

// loadConfig reads the config file over the defaults. The default path may
// be absent; an explicitly chosen one must exist.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if cmd.IsSet("config") {
		if err := pkgconfig.Load(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		return cfg, nil
	}
	if _, err := pkgconfig.LoadOptional(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// action adapts an internal entry point to a CLI action. extra builds
// command-specific options from the parsed flags.
func action(run entrypoint, extra func(*cli.Command) []internal.Option) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		opts := []internal.Option{
			internal.WithConfig(cfg),
			internal.WithVersion(version),
		}
		if extra != nil {
			opts = append(opts, extra(cmd)...)
		}

		if err := run(ctx, opts...); err != nil {
			return fmt.Errorf("%s: %w", cmd.Name, err)
		}
		return nil
	}
}

func main() {
	cmd := &cli.Command{
		Name:    "quizbook",
		Usage:   "Generate and serve a README built from a directory of interview questions",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Regenerate every configured section of the document",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Print the merged document instead of writing it",
					},
				},
				Action: action(internal.Generate, func(cmd *cli.Command) []internal.Option {
					return []internal.Option{internal.WithDryRun(cmd.Bool("dry-run"))}
				}),
			},
			{
				Name:   "check",
				Usage:  "Report questions that would be left out and verify the document markers",
				Action: action(internal.Check, nil),
			},
			{
				Name:  "rank",
				Usage: "Write rankings from the rank table into question metadata",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "table",
						Usage: "YAML file mapping slug to rank (defaults to content.rank_file or the built-in table)",
					},
				},
				Action: action(internal.Rank, func(cmd *cli.Command) []internal.Option {
					return []internal.Option{internal.WithRankTable(cmd.String("table"))}
				}),
			},
			{
				Name:   "answer",
				Usage:  "Generate answers for unpublished questions",
				Action: action(internal.Answer, nil),
			},
			{
				Name:   "serve",
				Usage:  "Serve the HTTP API and regenerate the document when questions change",
				Action: action(internal.Run, nil),
			},
			{
				Name:  "mcp",
				Usage: "Serve the question catalog to MCP clients over stdio",
				Action: action(internal.ServeMCP, func(*cli.Command) []internal.Option {
					return []internal.Option{internal.WithLogOutput(os.Stderr)}
				}),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
