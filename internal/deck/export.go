package deck

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ExportManifest lists the outcome of a deck render, one entry per line,
// sorted by entry id:
//
//	# <deck name>
//	<entry id> ok <file name> <theme hex>
//	<entry id> error <message>
func ExportManifest(d Deck, results []Result) string {
	sorted := make([]Result, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].EntryID < sorted[j].EntryID })

	lines := []string{}
	if d.Name != "" {
		lines = append(lines, "# "+d.Name)
	}
	for _, r := range sorted {
		if r.Err != nil {
			lines = append(lines, fmt.Sprintf("%s error %s", r.EntryID, r.Err))
			continue
		}
		file := filepath.Base(r.File)
		if r.File == "" {
			file = "-"
		}
		lines = append(lines, fmt.Sprintf("%s ok %s %s", r.EntryID, file, r.Theme.Hex()))
	}
	return strings.Join(lines, "\n")
}
