package process

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/llm-doc-processor/internal/common"
	"github.com/dtnitsch/llm-doc-processor/models"
	"github.com/dtnitsch/llm-doc-processor/pkg/artifact_manager"
	"github.com/dtnitsch/llm-doc-processor/pkg/postprocess"
	"github.com/dtnitsch/llm-doc-processor/pkg/profiles"
	"github.com/dtnitsch/llm-doc-processor/pkg/recognizer"
)

// MetricsOutput is what "postprocess --metrics" reports.
type MetricsOutput struct {
	Profile      string                `json:"profile" yaml:"profile"`
	QualityScore float64               `json:"quality_score" yaml:"quality_score"`
	Success      bool                  `json:"success" yaml:"success"`
	Metrics      models.QualityMetrics `json:"metrics" yaml:"metrics"`
}

// PostprocessAction handles "ldp postprocess <file>": it runs only the
// post-processing stages over already recognized text or hOCR.
func PostprocessAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("usage: ldp postprocess <text-or-hocr-file>")
	}
	path := c.Args().First()

	profile, err := profiles.Resolve(c.String("profile"))
	if err != nil {
		return err
	}
	pipeline, err := postprocess.New(profile)
	if err != nil {
		return err
	}

	text, err := readRecognizedText(path, c.Bool("raw"))
	if err != nil {
		return err
	}

	res := pipeline.Process(text)

	if out := c.String("output"); out != "" {
		if err := artifact_manager.SaveMarkdown(out, res.Text); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(os.Stdout, res.Text)
	}

	if c.Bool("metrics") {
		score := res.Score()
		return common.WriteOutput(os.Stderr, MetricsOutput{
			Profile:      profile.Name,
			QualityScore: score,
			Success:      score >= profile.MinQualityScore,
			Metrics:      res.Metrics,
		}, c.String("format"))
	}
	return nil
}

// readRecognizedText loads a text file, converting hOCR to plain lines.
// Unless raw is set the text gets the same cleanup as recognizer output.
func readRecognizedText(path string, raw bool) (string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	if isHOCR(path, data) {
		text, err := recognizer.ParseHOCR(bytes.NewReader(data))
		if err != nil {
			return "", err
		}
		return text, nil
	}
	if raw {
		return string(data), nil
	}
	return recognizer.Clean(string(data)), nil
}

func isHOCR(path string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hocr":
		return true
	case ".html", ".htm", ".xhtml":
		return bytes.Contains(data, []byte("ocr_page"))
	}
	return false
}
