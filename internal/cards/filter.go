package cards

import "strings"

type FilterOptions struct {
	IDs       []string `json:"ids"`
	Providers []string `json:"providers"`
	FreeWords string   `json:"free_words"`
}

func Filter(entries []Entry, opt FilterOptions) []Entry {
	out := []Entry{}
	for _, e := range entries {
		if len(opt.IDs) > 0 && !containsExact(opt.IDs, e.ID) {
			continue
		}
		if len(opt.Providers) > 0 {
			ok := false
			for _, p := range opt.Providers {
				if strings.EqualFold(strings.TrimSpace(p), e.Provider) {
					ok = true
					break
				}
			}
			if !ok {
				continue
			}
		}
		if opt.FreeWords != "" {
			title := strings.ToLower(e.Title)
			provider := strings.ToLower(e.Provider)
			ok := true
			for _, k := range strings.Fields(opt.FreeWords) {
				k = strings.ToLower(k)
				if !strings.Contains(title, k) && !strings.Contains(provider, k) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

func containsExact(hay []string, needle string) bool {
	for _, h := range hay {
		if h == needle {
			return true
		}
	}
	return false
}
