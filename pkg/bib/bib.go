// Package bib converts between records and BibTeX.
package bib

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/nickng/bibtex"
	"github.com/sirupsen/logrus"

	"github.com/xiaomi388/manuscripts/pkg/manuscript"
	"github.com/xiaomi388/manuscripts/pkg/types"
)

var (
	braceReplacer = strings.NewReplacer("{", "", "}", "")
	spaceRe       = regexp.MustCompile(`\s+`)
	authorSepRe   = regexp.MustCompile(`(?i)\s+and\s+`)
	nonAlnumRe    = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

func field(entry *bibtex.BibEntry, keys ...string) string {
	for _, key := range keys {
		if value, ok := entry.Fields[key]; ok && value != nil {
			return spaceRe.ReplaceAllString(strings.TrimSpace(braceReplacer.Replace(value.String())), " ")
		}
	}

	return ""
}

func splitAuthors(s string) []string {
	authors := []string{}
	if s == "" {
		return authors
	}

	for _, name := range authorSepRe.Split(s, -1) {
		if name = strings.TrimSpace(name); name != "" {
			authors = append(authors, name)
		}
	}

	return authors
}

// Parse reads BibTeX entries as records, in file order. Structured fields
// are left empty.
func Parse(r io.Reader) ([]types.Record, error) {
	bib, err := bibtex.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: bibtex: %v", manuscript.ErrMalformedInput, err)
	}

	records := []types.Record{}
	for _, entry := range bib.Entries {
		affiliations := []string{}
		if aff := field(entry, "institution", "organization", "school"); aff != "" {
			affiliations = append(affiliations, aff)
		}
		record := types.NewRecord(
			field(entry, "title"),
			splitAuthors(field(entry, "author")),
			affiliations,
			field(entry, "abstract"),
		)
		if record.Title() == "" {
			logrus.Warnf("bibtex entry %q has no title", entry.CiteName)
		}

		records = append(records, record)
	}

	return records, nil
}

// Import appends every entry of r to db and returns how many were added.
func Import(db *manuscript.DB, r io.Reader) (int, error) {
	records, err := Parse(r)
	if err != nil {
		return 0, err
	}

	for i, record := range records {
		if err := db.Add(record); err != nil {
			return i, fmt.Errorf("failed to add %q: %w", record.Title(), err)
		}
	}

	return len(records), nil
}

func surname(author string) string {
	if i := strings.Index(author, ","); i >= 0 {
		return strings.TrimSpace(author[:i])
	}

	parts := strings.Fields(author)
	if len(parts) == 0 {
		return ""
	}

	return parts[len(parts)-1]
}

func citeKey(record types.Record) string {
	var key string
	if authors := record.Authors(); len(authors) > 0 {
		key = nonAlnumRe.ReplaceAllString(surname(authors[0]), "")
	}
	for _, word := range strings.Fields(record.Title()) {
		if w := nonAlnumRe.ReplaceAllString(word, ""); w != "" {
			key += w
			break
		}
	}
	if key == "" {
		key = "entry"
	}

	return strings.ToLower(key)
}

func keywords(record types.Record) string {
	var words []string
	add := func(entries []types.Object, key string) {
		for _, e := range entries {
			if name := e.StringValue(key); name != "" {
				words = append(words, name)
			}
		}
	}
	add(record.Methods(), types.KeyModelName)
	add(record.Datasets(), types.KeyName)
	add(record.Metrics(), types.KeyName)

	return strings.Join(words, ", ")
}

// Build renders records as a BibTeX database with unique cite keys.
func Build(records []types.Record) *bibtex.BibTex {
	bib := bibtex.NewBibTex()
	seen := map[string]int{}

	for _, record := range records {
		key := citeKey(record)
		seen[key]++
		if n := seen[key]; n > 1 {
			key = fmt.Sprintf("%s%d", key, n)
		}

		entry := bibtex.NewBibEntry("misc", key)
		entry.AddField("title", bibtex.NewBibConst(record.Title()))
		if authors := record.Authors(); len(authors) > 0 {
			entry.AddField("author", bibtex.NewBibConst(strings.Join(authors, " and ")))
		}
		if affiliations := record.Affiliations(); len(affiliations) > 0 {
			entry.AddField("institution", bibtex.NewBibConst(strings.Join(affiliations, "; ")))
		}
		if abstract := record.Abstract(); abstract != "" {
			entry.AddField("abstract", bibtex.NewBibConst(abstract))
		}
		if kw := keywords(record); kw != "" {
			entry.AddField("keywords", bibtex.NewBibConst(kw))
		}

		bib.AddEntry(entry)
	}

	return bib
}

func Write(w io.Writer, records []types.Record) error {
	if _, err := io.WriteString(w, Build(records).PrettyString()); err != nil {
		return fmt.Errorf("failed to write bibtex: %w", err)
	}

	return nil
}
