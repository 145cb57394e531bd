// Package processor runs a document through recognition, post-processing,
// enrichment and persistence.
package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dtnitsch/llm-doc-processor/models"
	"github.com/dtnitsch/llm-doc-processor/pkg/analytics"
	"github.com/dtnitsch/llm-doc-processor/pkg/artifact_manager"
	"github.com/dtnitsch/llm-doc-processor/pkg/caching"
	"github.com/dtnitsch/llm-doc-processor/pkg/db"
	"github.com/dtnitsch/llm-doc-processor/pkg/detector"
	"github.com/dtnitsch/llm-doc-processor/pkg/language"
	"github.com/dtnitsch/llm-doc-processor/pkg/outline"
	"github.com/dtnitsch/llm-doc-processor/pkg/pages"
	"github.com/dtnitsch/llm-doc-processor/pkg/postprocess"
	"github.com/dtnitsch/llm-doc-processor/pkg/recognizer"
)

// ErrNoText is recorded when no batch produced any text.
var ErrNoText = errors.New("no text extracted from document")

// KeywordLimit is how many keywords are stored per run.
const KeywordLimit = 25

// Config wires the collaborators of a Processor. Only Recognizer is
// required.
type Config struct {
	Recognizer   recognizer.Recognizer
	Cache        *caching.Cache // nil disables the recognition cache
	DB           *db.DB         // nil disables run history
	Logger       *slog.Logger
	RetryBackoff time.Duration
	// DryRun skips writing markdown and metadata files.
	DryRun bool
}

func (c *Config) defaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = 2 * time.Second
	}
}

// Processor is safe for concurrent use; the batch command shares one across
// its workers.
type Processor struct {
	cfg       Config
	analytics *analytics.Analytics
}

// New creates a Processor.
func New(cfg Config) (*Processor, error) {
	if cfg.Recognizer == nil {
		return nil, errors.New("processor: recognizer is required")
	}
	cfg.defaults()
	return &Processor{cfg: cfg, analytics: &analytics.Analytics{}}, nil
}

// Engine returns the name of the configured recognizer.
func (p *Processor) Engine() string {
	return p.cfg.Recognizer.Name()
}

// document carries the intermediate state of one ProcessDocument call.
type document struct {
	req      models.ProcessingRequest
	result   models.ProcessingResult
	start    time.Time
	text     string
	keywords map[string]int
	lang     language.Result
	outline  []outline.Heading
	signals  detector.Signals
}

func (d *document) fail(err error) {
	d.result.Success = false
	d.result.Errors = append(d.result.Errors, err.Error())
}

// ProcessDocument loads the pages of req.InputPath, recognizes them batch by
// batch, post-processes the combined text and writes the outputs. Failures are
// reported in the result, never as a Go error: a failed batch is recorded and
// the remaining batches still run.
func (p *Processor) ProcessDocument(ctx context.Context, req models.ProcessingRequest) models.ProcessingResult {
	d := &document{
		req:    req,
		start:  time.Now(),
		result: models.ProcessingResult{InputPath: req.InputPath},
	}
	logger := p.cfg.Logger.With("input_path", req.InputPath, "profile", req.Profile.Name)
	logger.Info("Processing document", "engine", p.Engine())

	p.run(ctx, logger, d)

	d.result.ProcessingTime = time.Since(d.start).Seconds()
	d.result.Metrics.ProcessingTimeSeconds = d.result.ProcessingTime
	p.record(logger, d)

	logger.Info("Document finished",
		"success", d.result.Success,
		"quality_score", d.result.QualityScore,
		"errors", len(d.result.Errors),
		"processing_time", d.result.ProcessingTime)
	return d.result
}

func (p *Processor) run(ctx context.Context, logger *slog.Logger, d *document) {
	profile := d.req.Profile
	pipeline, err := postprocess.New(profile)
	if err != nil {
		d.fail(fmt.Errorf("invalid profile: %w", err))
		return
	}

	pgs, err := pages.Load(d.req.InputPath, pages.Range{First: d.req.StartPage, Last: d.req.EndPage})
	if err != nil {
		d.fail(err)
		return
	}
	pgs = p.normalize(logger, d, pgs, pages.MaxEdge(profile.ImageScale))
	if len(pgs) == 0 {
		d.fail(pages.ErrNoPages)
		return
	}

	texts, pageCount := p.recognize(ctx, logger, d, pgs)
	if err := ctx.Err(); err != nil {
		d.fail(fmt.Errorf("processing cancelled: %w", err))
		return
	}

	combined := recognizer.Combine(texts)
	if strings.TrimSpace(combined) == "" {
		d.fail(ErrNoText)
		return
	}

	out := pipeline.Process(combined)
	d.text = out.Text
	d.result.Metrics = out.Metrics
	d.result.Metrics.PagesProcessed = pageCount
	d.result.QualityScore = out.Score()
	d.result.Success = d.result.QualityScore >= profile.MinQualityScore
	if !d.result.Success {
		d.result.Warnings = append(d.result.Warnings, fmt.Sprintf(
			"quality score %.1f below threshold %.1f", d.result.QualityScore, profile.MinQualityScore))
	}

	p.enrich(d)

	if p.cfg.DryRun {
		return
	}
	if err := p.persist(d); err != nil {
		d.fail(err)
	}
}

// normalize scales pages to the profile's size cap. A page that cannot be
// decoded is dropped with a warning rather than failing the document.
func (p *Processor) normalize(logger *slog.Logger, d *document, pgs []pages.Page, maxEdge int) []pages.Page {
	out := pgs[:0:0]
	for _, pg := range pgs {
		n, err := pages.Normalize(pg, maxEdge)
		if err != nil {
			logger.Warn("Skipping unreadable page", "page", pg.Name, "error", err)
			d.result.Warnings = append(d.result.Warnings, fmt.Sprintf("%s: %v", pg.Name, err))
			continue
		}
		out = append(out, n)
	}
	return out
}

// recognize runs every batch in order. It returns the texts of successful
// batches and how many pages they covered.
func (p *Processor) recognize(ctx context.Context, logger *slog.Logger, d *document, pgs []pages.Page) ([]string, int) {
	profile := d.req.Profile
	rec := recognizer.WithRetry(p.cfg.Recognizer, recognizer.RetryPolicy{
		MaxRetries: profile.MaxRetries,
		Backoff:    p.cfg.RetryBackoff,
		Logger:     logger,
	})
	request := recognizer.Request{
		Model:       profile.ModelName,
		Instruction: profile.Instruction(),
		Languages:   profile.OCRLanguages,
	}

	batches := pages.Batches(pgs, profile.BatchSize)
	var texts []string
	pageCount := 0
	for i, batch := range batches {
		if ctx.Err() != nil {
			break
		}
		request.Pages = batch
		br := p.recognizeBatch(ctx, rec, i+1, request, d.req.Force)
		if br.Error != "" {
			logger.Error("Batch failed", "batch_num", br.BatchNum, "pages", br.Pages, "error", br.Error)
			d.result.Errors = append(d.result.Errors, fmt.Sprintf("batch %d: %s", br.BatchNum, br.Error))
		} else {
			logger.Info("Batch recognized", "batch_num", br.BatchNum, "of", len(batches),
				"page_count", br.PageCount, "cached", br.Cached, "chars", len(br.Text))
			texts = append(texts, br.Text)
			pageCount += br.PageCount
		}
		d.result.BatchResults = append(d.result.BatchResults, br)
	}
	return texts, pageCount
}

func (p *Processor) recognizeBatch(ctx context.Context, rec recognizer.Recognizer, num int, req recognizer.Request, force bool) models.BatchResult {
	br := models.BatchResult{
		BatchNum:  num,
		Pages:     pages.Names(req.Pages),
		PageCount: len(req.Pages),
	}

	key := caching.Key(rec.Name(), req.Model, req.Instruction, req.Pages)
	if p.cfg.Cache != nil && !force {
		if text, ok := p.cfg.Cache.Get(key); ok {
			br.Text = text
			br.Cached = true
			return br
		}
	}

	raw, err := rec.Recognize(ctx, req)
	if err != nil {
		br.Error = err.Error()
		return br
	}
	text := recognizer.Clean(raw)
	if text == "" {
		br.Error = recognizer.ErrEmptyResponse.Error()
		return br
	}
	br.Text = text

	if p.cfg.Cache != nil {
		if err := p.cfg.Cache.Set(key, text); err != nil {
			p.cfg.Logger.Warn("Failed to cache batch text", "batch_num", num, "error", err)
		}
	}
	return br
}

func (p *Processor) enrich(d *document) {
	d.keywords = p.analytics.WordFrequency(d.text)
	d.result.Keywords = d.keywords
	d.lang = language.Detect(d.text)
	d.result.Language = d.lang.Code
	d.outline = outline.Extract(d.text)
	d.signals = detector.Analyze(d.text)
}

func (p *Processor) persist(d *document) error {
	outputPath := artifact_manager.OutputPath(d.req.InputPath, d.req.OutputPath)
	if err := artifact_manager.SaveMarkdown(outputPath, d.text); err != nil {
		return err
	}
	d.result.OutputPath = outputPath

	meta := artifact_manager.NewMetadata(d.result, artifact_manager.ProfileInfo{
		Name:         d.req.Profile.Name,
		DocumentType: d.req.Profile.DocumentType,
		ModelName:    d.req.Profile.ModelName,
		Engine:       p.Engine(),
	})
	meta.Language = d.lang
	meta.Outline = d.outline
	meta.TopKeywords = analytics.TopKeywords(d.keywords, KeywordLimit)
	meta.Signals = d.signals
	meta.Metrics.ProcessingTimeSeconds = time.Since(d.start).Seconds()

	if _, err := artifact_manager.SaveMetadata(outputPath, meta); err != nil {
		return err
	}
	return nil
}

// record stores the run in the history database. A failure here is logged
// and does not change the result.
func (p *Processor) record(logger *slog.Logger, d *document) {
	if p.cfg.DB == nil {
		return
	}
	run := db.NewRun(d.result, d.req.Profile, p.Engine(), d.req.BatchID,
		analytics.TopKeywords(d.keywords, KeywordLimit))
	runID, err := p.cfg.DB.InsertRun(run)
	if err != nil {
		logger.Warn("Failed to record run", "error", err)
		return
	}
	d.result.RunID = runID
}
