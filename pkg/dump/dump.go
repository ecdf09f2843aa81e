package dump

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/xiaomi388/manuscripts/pkg/bib"
	"github.com/xiaomi388/manuscripts/pkg/types"
)

type Format string

const (
	FormatMarkdown = Format("markdown")
	FormatBibTeX   = Format("bibtex")
)

var markdown = template.Must(template.New("markdown").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(markdownTemplate))

func writeMarkdown(w io.Writer, records []types.Record) error {
	if err := markdown.Execute(w, records); err != nil {
		return fmt.Errorf("failed to generate markdown: %w", err)
	}

	return nil
}

// Write renders records in the given format.
func Write(w io.Writer, records []types.Record, format Format) error {
	switch format {
	case FormatMarkdown, "":
		return writeMarkdown(w, records)
	case FormatBibTeX:
		return bib.Write(w, records)
	default:
		return fmt.Errorf("unknown dump format: %s", format)
	}
}

// Dump writes the report for records to path.
func Dump(path string, records []types.Record, format Format) error {
	var buf bytes.Buffer
	if err := Write(&buf, records, format); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s file: %w", format, err)
	}

	return nil
}
