package profiles

import "github.com/dtnitsch/llm-doc-processor/models"

const academicPrompt = `You are processing an academic research paper. Extract the text with these critical requirements:

ACADEMIC PAPER FORMATTING RULES:
1. PRESERVE STRUCTURE: Maintain clear sections (Abstract, Introduction, Methods, Results, Discussion, References)
2. MERGE PARAGRAPHS: Combine broken lines within the same paragraph - academic text often has awkward line breaks
3. PRESERVE CITATIONS: Keep in-text citations intact (Author, Year) or [1] style references
4. HANDLE FIGURES/TABLES: When you encounter "Figure X" or "Table X", preserve the caption and description
5. MATHEMATICAL NOTATION: Preserve any mathematical expressions, equations, or formulas
6. SKIP HEADERS/FOOTERS: Ignore page numbers, journal names, author names in headers/footers
7. PRESERVE FORMATTING: Keep bold/italic text for emphasis, especially for key terms and section headers
8. HANDLE REFERENCES: Maintain reference list formatting at the end
9. PRESERVE TECHNICAL TERMS: Keep specialized vocabulary and acronyms intact
10. CLEAN HYPHENATION: Fix words split across lines with hyphens

OUTPUT FORMAT:
- Use proper markdown headers (# ## ###) for sections
- Keep paragraphs together without unnecessary line breaks
- Preserve lists and bullet points
- Use **bold** and *italic* markdown formatting
- Maintain table structure where possible
- Keep figure/table captions with their content

SKIP ENTIRELY:
- Page headers with journal/author information
- Page numbers
- Copyright notices
- Repetitive footers`

// AcademicPaper is tuned for dense research papers: small batches, a higher
// quality bar and aggressive running-header removal.
func AcademicPaper() models.Profile {
	p := models.DefaultProfile()
	p.Name = "Academic Paper"
	p.DocumentType = models.DocumentTypeAcademicPaper
	p.Description = "Optimized for academic research papers with proper citation and reference handling"
	p.BatchSize = 3
	p.OCRLanguages = []string{"eng"}
	p.SystemPrompt = academicPrompt
	p.SpecialInstructions = []string{
		"Pay special attention to mathematical formulas and equations",
		"Preserve all citation formats (both in-text and reference lists)",
		"Maintain figure and table captions",
		"Keep technical terminology intact",
		"Preserve author names and affiliations in the document body (not headers)",
	}
	p.MinQualityScore = 80
	p.MaxRetries = 3
	p.HeaderPatterns = []string{
		`^\d+\s*$`,            // page numbers
		`^[A-Z\s]+\s+\d+\s*$`, // JOURNAL NAME 123
		`^.*\s+et\s+al\.\s*$`, // Author et al.
		`^.*\s+\d{4}\s*$`,     // Author 2024
		`^Proceedings\s+of.*`,
		`^Copyright.*`,
		`^IEEE.*`,
		`^ACL.*`,
	}
	p.SectionPatterns = []string{
		`^(Abstract|Introduction|Related Work|Methodology|Methods|Results|Discussion|Conclusion|References|Acknowledgments)`,
		`^\d+\.?\s+(Introduction|Methodology|Results|Discussion|Conclusion)`,
	}
	p.SpecialFormatting = map[string]string{
		"equations": "Preserve mathematical notation",
		"citations": "Maintain citation integrity",
		"figures":   "Keep figure captions",
		"tables":    "Preserve table structure",
	}
	return p
}
