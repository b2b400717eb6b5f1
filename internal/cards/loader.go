package cards

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Catalog files, in load order. The first is required; later files may add
// entries or override earlier ones by id.
var catalogFiles = []string{
	"entries.csv",
	"custom_entries.csv",
}

// IsCatalogFile reports whether name is one of the files LoadEntriesFromDataDir reads.
func IsCatalogFile(name string) bool {
	base := filepath.Base(name)
	for _, f := range catalogFiles {
		if base == f {
			return true
		}
	}
	return false
}

// LoadEntriesFromDataDir loads the catalog CSVs from dataDir. Entries from
// later files replace earlier ones with the same id; order of first
// appearance is kept.
func LoadEntriesFromDataDir(dataDir string) ([]Entry, error) {
	var all []Entry
	index := map[string]int{}
	for i, name := range catalogFiles {
		path := filepath.Join(dataDir, name)
		if _, err := os.Stat(path); err != nil {
			if i == 0 {
				return nil, fmt.Errorf("no catalog in %s: %w", dataDir, err)
			}
			continue
		}
		es, err := loadSingleCSV(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		for _, e := range es {
			if idx, ok := index[e.ID]; ok {
				all[idx] = e
				continue
			}
			index[e.ID] = len(all)
			all = append(all, e)
		}
	}
	return all, nil
}

func loadSingleCSV(path string) ([]Entry, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv %s has no header", path)
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"id", "title", "image_url"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("csv %s: missing column %q", path, required)
		}
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	out := []Entry{}
	for n, row := range rows[1:] {
		e := Entry{
			ID:       get(row, "id"),
			Title:    get(row, "title"),
			Provider: get(row, "provider"),
			ImageURL: get(row, "image_url"),
			Link:     get(row, "link"),
		}
		if e.ID == "" {
			return nil, fmt.Errorf("csv %s: row %d has no id", path, n+2)
		}
		out = append(out, e)
	}
	return out, nil
}
