package models

import (
	"fmt"
	"strings"
)

// DocumentType classifies the kind of document a profile is tuned for.
type DocumentType string

const (
	DocumentTypeAcademicPaper    DocumentType = "academic_paper"
	DocumentTypeLanguageTextbook DocumentType = "language_textbook"
	DocumentTypeGeneric          DocumentType = "generic"
	DocumentTypeCustom           DocumentType = "custom"
)

// ParseDocumentType resolves a user-supplied document type string.
// An empty string resolves to DocumentTypeGeneric.
func ParseDocumentType(s string) (DocumentType, error) {
	switch DocumentType(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DocumentTypeGeneric, nil
	case DocumentTypeAcademicPaper:
		return DocumentTypeAcademicPaper, nil
	case DocumentTypeLanguageTextbook:
		return DocumentTypeLanguageTextbook, nil
	case DocumentTypeGeneric:
		return DocumentTypeGeneric, nil
	case DocumentTypeCustom:
		return DocumentTypeCustom, nil
	}
	return "", fmt.Errorf("unknown document type %q", s)
}
