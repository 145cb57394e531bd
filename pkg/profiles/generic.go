package profiles

import "github.com/dtnitsch/llm-doc-processor/models"

const genericPrompt = `You are converting scanned document pages to markdown. Extract the text with these requirements:

1. PRESERVE STRUCTURE: Keep headings, lists and tables
2. MERGE PARAGRAPHS: Combine broken lines within the same paragraph
3. PRESERVE FORMATTING: Keep bold and italic emphasis
4. SKIP HEADERS/FOOTERS: Ignore page numbers and repeated running headers
5. CLEAN HYPHENATION: Fix words split across lines with hyphens

OUTPUT FORMAT:
- Use markdown headers (# ## ###) for sections
- Use markdown tables for tabular content
- Output only the document text, without commentary`

// Generic works for any document and only strips bare page numbers.
func Generic() models.Profile {
	p := models.DefaultProfile()
	p.Description = "General purpose profile for documents without a specialised layout"
	p.OCRLanguages = []string{"eng"}
	p.SystemPrompt = genericPrompt
	p.HeaderPatterns = []string{
		`^\d+\s*$`,
		`^Page\s+\d+(\s+of\s+\d+)?\s*$`,
	}
	return p
}
