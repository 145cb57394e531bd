package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Batches: one row per "ldp batch" invocation
CREATE TABLE IF NOT EXISTS batches (
    batch_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    finished_at TIMESTAMP,
    input_dir TEXT NOT NULL,
    output_dir TEXT NOT NULL,
    profile TEXT NOT NULL,
    document_count INTEGER DEFAULT 0,
    success_count INTEGER DEFAULT 0,
    failed_count INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_batches_created ON batches(created_at DESC);

-- Runs: every processed document, with its quality metrics
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    batch_id INTEGER,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    input_path TEXT NOT NULL,
    output_path TEXT,
    profile TEXT NOT NULL,
    document_type TEXT NOT NULL,
    engine TEXT NOT NULL,
    model TEXT,
    success BOOLEAN DEFAULT 0,
    quality_score REAL DEFAULT 0,
    pages_processed INTEGER DEFAULT 0,
    lines_processed INTEGER DEFAULT 0,
    paragraphs_merged INTEGER DEFAULT 0,
    headers_removed INTEGER DEFAULT 0,
    formatting_fixes INTEGER DEFAULT 0,
    tables_detected INTEGER DEFAULT 0,
    figures_detected INTEGER DEFAULT 0,
    references_detected INTEGER DEFAULT 0,
    word_count INTEGER DEFAULT 0,
    language TEXT,
    processing_time REAL DEFAULT 0,
    error_count INTEGER DEFAULT 0,
    warning_count INTEGER DEFAULT 0,
    first_error TEXT,

    -- Top keywords as JSON array: ["word1:count1", "word2:count2", ...]
    top_keywords TEXT,

    FOREIGN KEY (batch_id) REFERENCES batches(batch_id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_batch ON runs(batch_id);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_input ON runs(input_path);
CREATE INDEX IF NOT EXISTS idx_runs_failed ON runs(success) WHERE success = 0;
`
