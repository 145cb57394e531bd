package db

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/llm-doc-processor/internal/common"
	"github.com/dtnitsch/llm-doc-processor/pkg/artifact_manager"
	dbpkg "github.com/dtnitsch/llm-doc-processor/pkg/db"
)

// RunsAction lists recent runs
func RunsAction(c *cli.Context) error {
	database, err := common.OpenDB(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if c.Bool("failed") {
		runs = failedRuns(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	printRunTable(runs)
	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'ldp db run <id>' to see details\n")
	return nil
}

// RunAction shows details for a specific run, the latest when no id is given
func RunAction(c *cli.Context) error {
	database, err := common.OpenDB(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRun(runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	status := "success"
	if !run.Success {
		status = "failed"
	}
	m := run.Metrics

	fmt.Printf("Run %d\n", run.RunID)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Created:     %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Input:       %s\n", run.InputPath)
	fmt.Printf("Output:      %s\n", valueOr(run.OutputPath, "(none)"))
	fmt.Printf("Profile:     %s (%s)\n", run.Profile, run.DocumentType)
	fmt.Printf("Engine:      %s %s\n", run.Engine, run.Model)
	if run.BatchID != 0 {
		fmt.Printf("Batch:       %d\n", run.BatchID)
	}
	fmt.Printf("Status:      %s\n", status)
	fmt.Printf("Quality:     %.1f\n", run.QualityScore)
	fmt.Printf("Language:    %s\n", valueOr(run.Language, "(unknown)"))
	fmt.Printf("Time:        %.1fs\n", run.ProcessingTime)

	fmt.Printf("\nMetrics:\n")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("  Pages:       %d\n", m.PagesProcessed)
	fmt.Printf("  Lines:       %d\n", m.LinesProcessed)
	fmt.Printf("  Merged:      %d\n", m.ParagraphsMerged)
	fmt.Printf("  Headers:     %d removed\n", m.HeadersRemoved)
	fmt.Printf("  Fixes:       %d\n", m.FormattingFixes)
	fmt.Printf("  Tables:      %d\n", m.TablesDetected)
	fmt.Printf("  Figures:     %d\n", m.FiguresDetected)
	fmt.Printf("  References:  %d\n", m.ReferencesDetected)
	fmt.Printf("  Words:       %d\n", m.WordCount)

	if keywords := dbpkg.KeywordNames(run.TopKeywords, 10); len(keywords) > 0 {
		fmt.Printf("\nKeywords:    %s\n", strings.Join(keywords, ", "))
	}
	if run.ErrorCount > 0 {
		fmt.Printf("\nErrors (%d): %s\n", run.ErrorCount, run.FirstError)
	}
	if run.WarningCount > 0 {
		fmt.Printf("Warnings:    %d\n", run.WarningCount)
	}

	if run.OutputPath != "" {
		metaPath := artifact_manager.MetadataPath(run.OutputPath)
		if _, err := os.Stat(metaPath); err == nil {
			fmt.Printf("\nTip: Full metadata in %s\n", metaPath)
		}
	}
	return nil
}

// BatchesAction lists batches, or the runs of one batch when an id is given
func BatchesAction(c *cli.Context) error {
	database, err := common.OpenDB(c)
	if err != nil {
		return err
	}
	defer database.Close()

	if c.NArg() > 0 {
		batchID, err := parseID(c.Args().First(), "batch")
		if err != nil {
			return err
		}
		batch, err := database.GetBatch(batchID)
		if err != nil {
			return err
		}
		runs, err := database.GetBatchRuns(batchID)
		if err != nil {
			return err
		}
		fmt.Printf("Batch %d: %s -> %s (%s)\n", batch.BatchID, batch.InputDir, batch.OutputDir, batch.Profile)
		fmt.Printf("Documents: %d total (%d success, %d failed)\n\n",
			batch.DocumentCount, batch.SuccessCount, batch.FailedCount)
		printRunTable(runs)
		return nil
	}

	batches, err := database.ListBatches(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list batches: %w", err)
	}
	if len(batches) == 0 {
		fmt.Println("No batches found")
		return nil
	}

	fmt.Printf("%-6s %-20s %-6s %-8s %-8s %-20s %-30s\n",
		"ID", "Created", "Docs", "Success", "Failed", "Profile", "Input Dir")
	fmt.Println(strings.Repeat("-", 110))
	for _, b := range batches {
		fmt.Printf("%-6d %-20s %-6d %-8d %-8d %-20s %-30s\n",
			b.BatchID,
			b.CreatedAt.Format("2006-01-02 15:04:05"),
			b.DocumentCount,
			b.SuccessCount,
			b.FailedCount,
			b.Profile,
			b.InputDir,
		)
	}
	fmt.Printf("\nTotal: %d batches\n", len(batches))
	return nil
}

func printRunTable(runs []dbpkg.Run) {
	fmt.Printf("%-6s %-20s %-8s %-8s %-6s %-10s %-40s\n",
		"ID", "Created", "Status", "Quality", "Pages", "Engine", "Input")
	fmt.Println(strings.Repeat("-", 110))
	for _, r := range runs {
		status := "ok"
		if !r.Success {
			status = "failed"
		}
		fmt.Printf("%-6d %-20s %-8s %-8.1f %-6d %-10s %-40s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			status,
			r.QualityScore,
			r.Metrics.PagesProcessed,
			r.Engine,
			r.InputPath,
		)
	}
}

func failedRuns(runs []dbpkg.Run) []dbpkg.Run {
	var out []dbpkg.Run
	for _, r := range runs {
		if !r.Success {
			out = append(out, r)
		}
	}
	return out
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
