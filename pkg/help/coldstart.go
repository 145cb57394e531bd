package help

const ColdstartYAML = `# ldp (llm-doc-processor) Quick Start

engines:
  gemini: "Vision model recognition (default, needs GOOGLE_API_KEY)"
  tesseract: "Local OCR through gosseract, no network"

profiles:
  academic_paper: "Research papers: strips journal headers, keeps references (default)"
  language_textbook: "Language textbooks: keeps exercises and vocabulary lists"
  generic: "Any document, only bare page numbers are stripped"
  custom: "Pass a YAML file to --profile; missing fields come from 'base'"

commands:
  process_one: |
    ldp process paper.pdf

  process_pages: |
    ldp process paper.pdf --start 3 --end 10 -o out/

  local_ocr: |
    ldp process scans/ --engine tesseract --profile generic

  batch: |
    ldp batch papers/ processed/ --recursive --workers 4

  postprocess_only: |
    ldp postprocess recognized.txt --profile academic_paper --metrics

  benchmark: |
    ldp benchmark papers/ --profile academic_paper

  profiles: |
    ldp profiles
    ldp profiles show language_textbook > my_profile.yaml

  history: |
    ldp db runs --limit 20
    ldp db runs --failed
    ldp db run
    ldp db batches 3

  serve: |
    ldp serve --addr 127.0.0.1:8080
    curl -s localhost:8080/v1/postprocess -d '{"text": "...", "profile": "generic"}'

outputs:
  - "<name>_processed.md next to the input unless --output is given"
  - "<name>_processed.json with metrics, language, outline and keywords"
  - "summary-YYYY-MM-DD.yaml in the batch output directory"
  - "ldp.db next to the binary (override with --db)"

caching:
  - "Recognized batches are cached by engine, model, prompt and page images"
  - "--force skips the cache, --cache-ttl expires entries"

quality:
  score: "60*(1 - merged/lines) + 20*fixes/lines + 20, clamped to 0-100"
  success: "score >= profile min_quality_score"

error_behavior:
  - "A failed page batch is recorded and the rest of the document continues"
  - "No recognized text at all fails the document"
  - "Exit codes: 0=success, 1=partial failure, 2=complete failure"
`
