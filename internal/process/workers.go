package process

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dtnitsch/llm-doc-processor/models"
)

// DocumentProcessor is the part of processor.Processor the worker pool uses.
type DocumentProcessor interface {
	ProcessDocument(ctx context.Context, req models.ProcessingRequest) models.ProcessingResult
}

// DefaultPatterns selects scanned PDFs when no --pattern is given.
var DefaultPatterns = []string{"*.pdf"}

// FindDocuments lists files under dir whose base name matches any pattern,
// sorted by path. Subdirectories are searched only when recursive is set.
func FindDocuments(dir string, patterns []string, recursive bool) ([]string, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	for _, p := range patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if matchesAny(d.Name(), patterns) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	sort.Strings(files)
	return files, nil
}

func matchesAny(name string, patterns []string) bool {
	lower := strings.ToLower(name)
	for _, p := range patterns {
		if ok, _ := filepath.Match(strings.ToLower(p), lower); ok {
			return true
		}
	}
	return false
}

// BuildJobs creates one request per file. Outputs mirror the input layout
// under outputDir.
func BuildJobs(files []string, req models.BatchRequest, batchID int64) ([]Job, error) {
	jobs := make([]Job, 0, len(files))
	for i, file := range files {
		rel, err := filepath.Rel(req.InputDirectory, filepath.Dir(file))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve output for %s: %w", file, err)
		}
		jobs = append(jobs, Job{
			Index: i,
			Request: models.ProcessingRequest{
				InputPath:  file,
				OutputPath: filepath.Join(req.OutputDirectory, rel),
				Profile:    req.Profile,
				Force:      req.Force,
				BatchID:    batchID,
			},
		})
	}
	return jobs, nil
}

// Run processes jobs with a fixed pool of workers and returns the results in
// job order.
func Run(ctx context.Context, logger *slog.Logger, p DocumentProcessor, jobs []Job, workerCount int) []models.ProcessingResult {
	if workerCount < 1 {
		workerCount = 1
	}
	logger.Info("Starting document workers", "document_count", len(jobs), "workers", workerCount)

	var wg sync.WaitGroup
	jobCh := make(chan Job, len(jobs))
	resultCh := make(chan Result, len(jobs))

	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go worker(ctx, w, logger, p, &wg, jobCh, resultCh)
	}

	for _, job := range jobs {
		jobCh <- job
	}
	close(jobCh)

	wg.Wait()
	close(resultCh)
	logger.Info("All document workers finished")

	results := make([]models.ProcessingResult, len(jobs))
	for r := range resultCh {
		results[r.Index] = r.Result
	}
	return results
}

func worker(ctx context.Context, id int, logger *slog.Logger, p DocumentProcessor, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		if ctx.Err() != nil {
			results <- Result{Index: job.Index, Result: models.ProcessingResult{
				InputPath: job.Request.InputPath,
				Errors:    []string{fmt.Sprintf("processing cancelled: %v", ctx.Err())},
			}}
			continue
		}
		logger.Info("Worker started job", "worker_id", id, "input_path", job.Request.InputPath)
		results <- Result{Index: job.Index, Result: p.ProcessDocument(ctx, job.Request)}
	}
}

// ensureDir creates the batch output directory up front so a bad path fails
// before any recognition is paid for.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}
