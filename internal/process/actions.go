package process

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/llm-doc-processor/internal/common"
	"github.com/dtnitsch/llm-doc-processor/models"
	"github.com/dtnitsch/llm-doc-processor/pkg/artifact_manager"
	"github.com/dtnitsch/llm-doc-processor/pkg/db"
	"github.com/dtnitsch/llm-doc-processor/pkg/manifest"
	"github.com/dtnitsch/llm-doc-processor/pkg/profiles"
)

// ProcessAction handles "ldp process <file>".
func ProcessAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("usage: ldp process <file-or-page-dir>")
	}
	input := c.Args().First()
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("input file not found: %s", input)
	}

	logger := common.NewLogger(c)
	profile, err := profiles.Resolve(c.String("profile"))
	if err != nil {
		return err
	}

	cfg := common.RunConfigFromFlags(c)
	proc, closeFn, err := common.NewProcessor(cfg, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	result := proc.ProcessDocument(ctx, models.ProcessingRequest{
		InputPath:  input,
		OutputPath: c.String("output"),
		Profile:    profile,
		StartPage:  c.Int("start"),
		EndPage:    c.Int("end"),
		Force:      cfg.Force,
	})

	var out any = BuildDocumentOutput(result)
	if fields := c.String("fields"); fields != "" {
		out = common.FilterResultFields(out, fields)
	}
	if err := common.WriteOutput(os.Stdout, out, c.String("format")); err != nil {
		return err
	}

	if !result.Success {
		return cli.Exit("", 1)
	}
	return nil
}

// BatchAction handles "ldp batch <input-dir> <output-dir>".
func BatchAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("usage: ldp batch <input-dir> <output-dir>")
	}
	startTime := time.Now()
	logger := common.NewLogger(c)

	profile, err := profiles.Resolve(c.String("profile"))
	if err != nil {
		return err
	}

	cfg := common.RunConfigFromFlags(c)
	req := models.BatchRequest{
		InputDirectory:  c.Args().Get(0),
		OutputDirectory: c.Args().Get(1),
		Profile:         profile,
		FilePatterns:    c.StringSlice("pattern"),
		Recursive:       c.Bool("recursive"),
		Workers:         cfg.Workers,
		Force:           cfg.Force,
	}

	files, err := FindDocuments(req.InputDirectory, req.FilePatterns, req.Recursive)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no documents matching %v found in %s", patternsOrDefault(req.FilePatterns), req.InputDirectory)
	}
	if err := ensureDir(req.OutputDirectory); err != nil {
		return err
	}

	proc, closeFn, err := common.NewProcessor(cfg, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	// A separate handle for batch bookkeeping; the processor records runs.
	var batchID int64
	var database *db.DB
	if !cfg.DryRun {
		database, err = db.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("Batch history disabled", "error", err)
			database = nil
		}
	}
	if database != nil {
		defer database.Close()
		batchID, err = database.CreateBatch(req.InputDirectory, req.OutputDirectory, profile.Name, len(files))
		if err != nil {
			logger.Warn("Failed to record batch", "error", err)
		}
	}

	jobs, err := BuildJobs(files, req, batchID)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()
	results := Run(ctx, logger, proc, jobs, req.Workers)

	stats := BuildStats(results, profile.MinQualityScore)
	stats.TotalTimeSeconds = time.Since(startTime).Seconds()

	if database != nil && batchID != 0 {
		if err := database.FinishBatch(batchID, stats.Successful, stats.Failed); err != nil {
			logger.Warn("Failed to finish batch record", "batch_id", batchID, "error", err)
		}
	}

	summary := manifest.GenerateSummary(manifest.Header{
		InputDirectory:  req.InputDirectory,
		OutputDirectory: req.OutputDirectory,
		Profile:         profile.Name,
		BatchID:         batchID,
	}, results)
	var manifestPath string
	if !cfg.DryRun {
		manifestPath, err = artifact_manager.SaveManifest(req.OutputDirectory, summary)
		if err != nil {
			logger.Error("Failed to save manifest", "error", err)
		}
	}

	final := FinalOutput{
		Profile:      profile.Name,
		BatchID:      batchID,
		ManifestPath: manifestPath,
		Stats:        stats,
	}
	for _, r := range results {
		final.Results = append(final.Results, BuildDocumentOutput(r))
	}
	final.Status = overallStatus(stats)

	if err := common.WriteOutput(os.Stdout, final, c.String("format")); err != nil {
		return err
	}

	if stats.Failed == stats.TotalDocuments {
		return cli.Exit("", 2)
	}
	if stats.Failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

// BenchmarkAction handles "ldp benchmark <dir>": every PDF is processed with
// one profile and the average quality is compared with its threshold.
func BenchmarkAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("usage: ldp benchmark <test-dir>")
	}
	dir := c.Args().First()
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("test directory not found: %s", dir)
	}
	startTime := time.Now()
	logger := common.NewLogger(c)

	profile, err := profiles.Resolve(c.String("profile"))
	if err != nil {
		return err
	}

	files, err := FindDocuments(dir, DefaultPatterns, false)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no PDF files found in %s", dir)
	}

	cfg := common.RunConfigFromFlags(c)
	proc, closeFn, err := common.NewProcessor(cfg, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	results := benchmark(ctx, proc, files, profile, cfg.Force)

	stats := BuildStats(results, profile.MinQualityScore)
	stats.TotalTimeSeconds = time.Since(startTime).Seconds()

	final := FinalOutput{Profile: profile.Name, Stats: stats}
	for _, r := range results {
		final.Results = append(final.Results, BuildDocumentOutput(r))
	}
	if BenchmarkPassed(stats) {
		final.Status = "passed"
	} else {
		final.Status = "failed"
	}

	if err := common.WriteOutput(os.Stdout, final, c.String("format")); err != nil {
		return err
	}
	if final.Status != "passed" {
		return cli.Exit("", 1)
	}
	return nil
}

// benchmark runs documents one at a time so per-document timings are
// comparable.
func benchmark(ctx context.Context, p DocumentProcessor, files []string, profile models.Profile, force bool) []models.ProcessingResult {
	results := make([]models.ProcessingResult, 0, len(files))
	for _, file := range files {
		if ctx.Err() != nil {
			break
		}
		results = append(results, p.ProcessDocument(ctx, models.ProcessingRequest{
			InputPath: file,
			Profile:   profile,
			Force:     force,
		}))
	}
	return results
}

func patternsOrDefault(patterns []string) []string {
	if len(patterns) == 0 {
		return DefaultPatterns
	}
	return patterns
}
