// Package keywords loads the keyword taxonomy that drives article search.
//
// The source is a CSV file with columns Category, Keyword and an optional
// Developer column. Each row is one search unit; when the developer is set an
// article must mention both the keyword and the developer to count as
// relevant.
package keywords

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Item is one search unit. An empty Developer means the keyword stands alone;
// a non-empty one makes the match conjunctive.
type Item struct {
	Keyword   string
	Developer string
}

// Catalog maps a category name to its keyword items, preserving row order
// within a category.
type Catalog map[string][]Item

// TotalItems returns the number of keyword items across all categories.
func (c Catalog) TotalItems() int {
	total := 0
	for _, items := range c {
		total += len(items)
	}
	return total
}

// ConfigError reports an unusable keyword source. It is fatal: the pipeline
// cannot run without a catalog.
type ConfigError struct {
	Source string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("keyword source %s: %s", e.Source, e.Reason)
}

// Load reads the catalog from a CSV file.
func Load(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigError{Source: path, Reason: err.Error()}
	}
	defer f.Close()

	return Parse(f, path)
}

// Parse reads the catalog from r. The source name is used in errors only.
func Parse(r io.Reader, source string) (Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, &ConfigError{Source: source, Reason: "missing header row"}
	}

	catIdx, kwIdx, devIdx := -1, -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "Category":
			catIdx = i
		case "Keyword":
			kwIdx = i
		case "Developer":
			devIdx = i
		}
	}
	if catIdx < 0 || kwIdx < 0 {
		return nil, &ConfigError{Source: source, Reason: "must contain 'Category' and 'Keyword' columns"}
	}

	catalog := Catalog{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ConfigError{Source: source, Reason: err.Error()}
		}

		keyword := field(record, kwIdx)
		if keyword == "" {
			continue
		}

		item := Item{Keyword: keyword}
		if devIdx >= 0 {
			item.Developer = field(record, devIdx)
		}

		category := field(record, catIdx)
		catalog[category] = append(catalog[category], item)
	}

	return catalog, nil
}

func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
