//go:build !notesseract

package main

// Links the local OCR engine; build with -tags notesseract on hosts
// without the tesseract and leptonica headers.
import _ "github.com/dtnitsch/llm-doc-processor/pkg/recognizer/tesseract"
