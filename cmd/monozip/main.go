package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/jorge-barreto/monozip/internal/archive"
	"github.com/jorge-barreto/monozip/internal/config"
	"github.com/jorge-barreto/monozip/internal/docs"
	"github.com/jorge-barreto/monozip/internal/doctor"
	"github.com/jorge-barreto/monozip/internal/format"
	applog "github.com/jorge-barreto/monozip/internal/log"
	"github.com/jorge-barreto/monozip/internal/pipeline"
	"github.com/jorge-barreto/monozip/internal/scaffold"
	"github.com/jorge-barreto/monozip/internal/server"
	"github.com/jorge-barreto/monozip/internal/ux"
)

func main() {
	app := &cli.Command{
		Name:        "monozip",
		Usage:       "Turn a paste of many source files into one zip archive",
		Description: "Run 'monozip docs' for documentation on the paste format, presets, formatters, and config.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Path to monozip.yaml"},
			&cli.BoolFlag{Name: "debug", Usage: "Verbose structured logging to stderr"},
		},
		Commands: []*cli.Command{
			buildCmd(),
			serveCmd(),
			presetsCmd(),
			doctorCmd(),
			initCmd(),
			docsCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		os.Exit(1)
	}
}

func buildCmd() *cli.Command {
	return &cli.Command{
		Name:      "build",
		Usage:     "Build a zip from a paste file or stdin",
		ArgsUsage: "[file|-]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "preset", Aliases: []string{"p"}, Usage: "Append a starter preset"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: archive.DefaultFilename, Usage: "Output archive path"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Print the report without writing the archive"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			input, err := readInput(cmd.Args().First())
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := cliLogger(cmd)
			defer log.Sync()

			p, err := pipeline.New(cfg, log)
			if err != nil {
				return err
			}
			_, cmds := pipeline.NewRegistry(cfg.Formatters)
			if missing := format.Missing(cmds); len(missing) > 0 {
				ux.Warn("formatters not found, files will be left as pasted: %s", strings.Join(missing, ", "))
			}
			if key := cmd.String("preset"); key != "" {
				if _, ok := p.Catalog.Lookup(key); !ok {
					ux.Warn("unknown preset %q ignored (run 'monozip presets')", key)
				}
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			res, err := p.Run(ctx, pipeline.Request{Code: input, Preset: cmd.String("preset")})
			if errors.Is(err, pipeline.ErrEmptyInput) {
				return fmt.Errorf("no files found: the paste has no path lines followed by content")
			}
			if err != nil {
				return err
			}

			rep := res.Report()
			ux.RenderReport(ux.Out, rep)
			ux.Step("formatting: %s", res.Format)
			if cmd.Bool("dry-run") {
				ux.Step("dry run, %s not written (%s)", cmd.String("out"), res.Archive.Digest)
				return nil
			}
			out := cmd.String("out")
			if err := archive.Save(out, res.Archive.Data); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			ux.Success(out, rep.TotalFiles, len(res.Archive.Data), res.Duration)
			return nil
		},
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the /generate HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "listen", Aliases: []string{"l"}, Usage: "Listen address (overrides config)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := applog.New(cmd.Bool("debug"))
			defer log.Sync()

			p, err := pipeline.New(cfg, log)
			if err != nil {
				return err
			}
			_, cmds := pipeline.NewRegistry(cfg.Formatters)
			if err := format.Preflight(cmds); err != nil {
				log.Warn("formatting degraded", zap.Error(err))
			}

			addr := cfg.Listen
			if l := cmd.String("listen"); l != "" {
				addr = l
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
			defer stop()
			return server.New(p, cfg.MaxRequestBytes, log).ListenAndServe(ctx, addr)
		},
	}
}

func presetsCmd() *cli.Command {
	return &cli.Command{
		Name:  "presets",
		Usage: "List available presets",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			p, err := pipeline.New(cfg, nil)
			if err != nil {
				return err
			}
			ux.RenderPresets(ux.Out, p.Catalog.All())
			return nil
		},
	}
}

func doctorCmd() *cli.Command {
	return &cli.Command{
		Name:  "doctor",
		Usage: "Check the preset catalog and formatter tools",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return doctor.Run(ctx, cfg, ux.Out)
		},
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Write an editable monozip.yaml and presets.yaml",
		ArgsUsage: "[dir]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.Args().First()
			if dir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				dir = wd
			}
			return scaffold.Init(dir)
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-14s %s", t.Name, t.Summary)
					if len(t.Aliases) > 0 {
						fmt.Printf(" %s(%s)%s", ux.Dim, strings.Join(t.Aliases, ", "), ux.Reset)
					}
					fmt.Println()
				}
				fmt.Println("\nRun 'monozip docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Print(t.Content)
			return nil
		},
	}
}

func readInput(arg string) (string, error) {
	if arg == "" || arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// loadConfig uses --config when given, otherwise the nearest monozip.yaml
// from cwd upward, otherwise built-in defaults.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	if path := cmd.String("config"); path != "" {
		cfg, err := config.LoadOrDefault(path, true)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}
	path, err := findConfig()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrDefault(path, false)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// findConfig walks up from cwd looking for monozip.yaml. When none exists it
// returns the default path in cwd.
func findConfig() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	dir := cwd
	for {
		p := filepath.Join(dir, config.DefaultPath)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return filepath.Join(cwd, config.DefaultPath), nil
		}
		dir = parent
	}
}

func cliLogger(cmd *cli.Command) *zap.Logger {
	if cmd.Bool("debug") {
		return applog.New(true)
	}
	return zap.NewNop()
}
