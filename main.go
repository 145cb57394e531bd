package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/llm-doc-processor/internal/common"
	dbcmd "github.com/dtnitsch/llm-doc-processor/internal/db"
	"github.com/dtnitsch/llm-doc-processor/internal/process"
	profilescmd "github.com/dtnitsch/llm-doc-processor/internal/profiles"
	"github.com/dtnitsch/llm-doc-processor/internal/serve"
	"github.com/dtnitsch/llm-doc-processor/models"
	"github.com/dtnitsch/llm-doc-processor/pkg/help"
	"github.com/dtnitsch/llm-doc-processor/pkg/profiles"
)

func main() {
	// A missing .env is fine; the key may come from the environment.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "ldp",
		Usage: "Convert scanned documents to clean markdown",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only log errors",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path to the run history database (default: ldp.db next to the binary)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "process",
				Usage:     "Process a single PDF or page directory",
				ArgsUsage: "<file-or-page-dir>",
				Flags: append(engineFlags(),
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file (.md) or directory"},
					&cli.IntFlag{Name: "start", Aliases: []string{"s"}, Usage: "First page to process (1-based)"},
					&cli.IntFlag{Name: "end", Aliases: []string{"e"}, Usage: "Last page to process (inclusive)"},
					&cli.StringFlag{Name: "fields", Usage: "Comma-separated result fields to print"},
					formatFlag(),
				),
				Action: process.ProcessAction,
			},
			{
				Name:      "batch",
				Usage:     "Process every matching document in a directory",
				ArgsUsage: "<input-dir> <output-dir>",
				Flags: append(engineFlags(),
					&cli.StringSliceFlag{Name: "pattern", Usage: "Glob pattern for input files (repeatable)", Value: cli.NewStringSlice(process.DefaultPatterns...)},
					&cli.BoolFlag{Name: "recursive", Aliases: []string{"r"}, Usage: "Search subdirectories"},
					formatFlag(),
				),
				Action: process.BatchAction,
			},
			{
				Name:      "postprocess",
				Usage:     "Run only the post-processing stages over recognized text or hOCR",
				ArgsUsage: "<text-or-hocr-file>",
				Flags: []cli.Flag{
					profileFlag(),
					&cli.BoolFlag{Name: "raw", Usage: "Skip recognizer output cleanup"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write the text to a file instead of stdout"},
					&cli.BoolFlag{Name: "metrics", Aliases: []string{"m"}, Usage: "Print quality metrics to stderr"},
					formatFlag(),
				},
				Action: process.PostprocessAction,
			},
			{
				Name:   "profiles",
				Usage:  "List built-in processing profiles",
				Action: profilescmd.ListAction,
				Subcommands: []*cli.Command{
					{
						Name:      "show",
						Usage:     "Print a profile as YAML",
						ArgsUsage: "<name-or-file>",
						Action:    profilescmd.ShowAction,
					},
				},
			},
			{
				Name:      "benchmark",
				Usage:     "Process every PDF in a directory and check the average quality",
				ArgsUsage: "<test-dir>",
				Flags:     append(engineFlags(), formatFlag()),
				Action:    process.BenchmarkAction,
			},
			{
				Name:  "db",
				Usage: "Inspect run history",
				Subcommands: []*cli.Command{
					{
						Name:  "runs",
						Usage: "List recent runs",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "Maximum runs to list"},
							&cli.BoolFlag{Name: "failed", Usage: "Only failed runs"},
						},
						Action: dbcmd.RunsAction,
					},
					{
						Name:      "run",
						Usage:     "Show one run (latest when no id is given)",
						ArgsUsage: "[run-id]",
						Action:    dbcmd.RunAction,
					},
					{
						Name:      "batches",
						Usage:     "List batches, or the runs of one batch",
						ArgsUsage: "[batch-id]",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "Maximum batches to list"},
						},
						Action: dbcmd.BatchesAction,
					},
				},
			},
			{
				Name:  "serve",
				Usage: "Serve the post-processing core over HTTP",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Value: serve.DefaultAddr, Usage: "Listen address"},
				},
				Action: serve.ServeAction,
			},
			{
				Name:  "coldstart",
				Usage: "Print a YAML quick start",
				Action: func(c *cli.Context) error {
					fmt.Print(help.ColdstartYAML)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func profileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "profile",
		Aliases: []string{"p"},
		Value:   profiles.DefaultName,
		Usage:   "Built-in profile name or path to a YAML profile",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "format",
		Value: "yaml",
		Usage: "Output format: yaml or json",
	}
}

// engineFlags are shared by every command that runs recognition.
func engineFlags() []cli.Flag {
	defaults := models.DefaultRunConfig()
	return []cli.Flag{
		profileFlag(),
		&cli.StringFlag{Name: "engine", Value: defaults.Engine, Usage: "Recognition engine: gemini or tesseract"},
		&cli.StringFlag{Name: "api-key", EnvVars: []string{common.APIKeyEnv}, Usage: "Gemini API key"},
		&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Value: defaults.Workers, Usage: "Concurrent documents"},
		&cli.StringFlag{Name: "cache-dir", Value: defaults.CacheDir, Usage: "Recognition cache directory (empty disables)"},
		&cli.DurationFlag{Name: "cache-ttl", Value: defaults.CacheTTL, Usage: "Recognition cache lifetime"},
		&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Ignore cached recognition results"},
		&cli.BoolFlag{Name: "dry-run", Usage: "Process without writing outputs or history"},
	}
}
