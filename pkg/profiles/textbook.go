package profiles

import "github.com/dtnitsch/llm-doc-processor/models"

const textbookPrompt = `You are processing a language learning textbook. Extract the text with these critical requirements:

LANGUAGE TEXTBOOK FORMATTING RULES:
1. PRESERVE STRUCTURE: Maintain units, lessons, exercises, and dialogues clearly
2. MERGE PARAGRAPHS: Combine broken lines within the same paragraph - textbooks often have awkward line breaks
3. PRESERVE ACCENTS: Keep all special characters and accents intact (é, ñ, ü, etc.)
4. HANDLE DIALOGUES: Maintain speaker names and conversation structure
5. PRESERVE EXERCISES: Keep exercise numbers and instructions clear
6. HANDLE TABLES: Preserve verb conjugation tables, vocabulary lists, and grammar tables
7. SKIP HEADERS: Ignore page headers like "Unit 2: In town 23"
8. PRESERVE FORMATTING: Keep bold/italic text for new vocabulary and emphasis
9. HANDLE TRANSLATIONS: Maintain parallel text in different languages
10. CLEAN HYPHENATION: Fix words split across lines with hyphens

OUTPUT FORMAT:
- Use proper markdown headers (# ## ###) for units, lessons, sections
- Keep paragraphs together without unnecessary line breaks
- Preserve exercise structure and numbering
- Use **bold** for new vocabulary and key terms
- Use *italic* for examples and translations
- Maintain table structure for conjugations and vocabulary
- Keep dialogue format clear with speaker names

SKIP ENTIRELY:
- Unit headers with page numbers (e.g., "Unit 2: In town 23")
- Page numbers only
- Repetitive headers and footers
- Copyright information`

// LanguageTextbook keeps dialogues, exercises and accented text intact.
// Reference counting is off since textbooks rarely carry a bibliography.
func LanguageTextbook() models.Profile {
	p := models.DefaultProfile()
	p.Name = "Language Textbook"
	p.DocumentType = models.DocumentTypeLanguageTextbook
	p.Description = "Optimized for language learning textbooks with dialogue and exercise preservation"
	p.BatchSize = 5
	p.OCRLanguages = []string{"eng", "fra", "spa", "deu"}
	p.SystemPrompt = textbookPrompt
	p.SpecialInstructions = []string{
		"Preserve all accented characters and special language symbols",
		"Maintain dialogue speaker labels and structure",
		"Keep exercise numbering and instructions intact",
		"Preserve verb conjugation and vocabulary tables",
		"Maintain parallel translations",
	}
	p.EnableReferenceFormatting = false
	p.MinQualityScore = 75
	p.MaxRetries = 2
	p.HeaderPatterns = []string{
		`^Unit\s+\d+:\s+[A-Za-zÀ-ÿ\s]+\s+\d+\s*$`, // Unit X: Title PageNum
		`^Lesson\s+\d+\s*$`,
		`^\d{1,3}\s*$`,
		`^Page\s+\d+\s*$`,
		`^Chapter\s+\d+\s*$`,
	}
	p.SectionPatterns = []string{
		`^(Unit|Lesson|Chapter)\s+\d+`,
		`^(Exercise|Dialogue|Vocabulary|Grammar|Review)`,
		`^\*\*(Exercise|Dialogue|Vocabulary|Grammar|Review)`,
	}
	p.SpecialFormatting = map[string]string{
		"vocabulary": "Preserve new vocabulary highlighting",
		"dialogues":  "Maintain speaker structure",
		"exercises":  "Keep exercise formatting",
		"tables":     "Preserve conjugation and vocabulary tables",
		"accents":    "Maintain all special characters",
	}
	return p
}
