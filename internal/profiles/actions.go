// Package profiles holds the "ldp profiles" commands.
package profiles

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/llm-doc-processor/pkg/profiles"
)

// ListAction handles "ldp profiles".
func ListAction(c *cli.Context) error {
	return printProfileTable(os.Stdout)
}

// ShowAction handles "ldp profiles show <name-or-file>". A YAML file is
// validated and printed with its defaults filled in.
func ShowAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("usage: ldp profiles show <name-or-file>")
	}
	p, err := profiles.Resolve(c.Args().First())
	if err != nil {
		return err
	}
	data, err := profiles.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}

func printProfileTable(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%-20s %-20s %-10s %-6s %s\n", "Key", "Type", "MinScore", "Batch", "Description"); err != nil {
		return err
	}
	fmt.Fprintln(w, strings.Repeat("-", 100))
	names := profiles.Names()
	for i, p := range profiles.List() {
		fmt.Fprintf(w, "%-20s %-20s %-10.1f %-6d %s\n", names[i], p.DocumentType, p.MinQualityScore, p.BatchSize, p.Description)
	}
	return nil
}
