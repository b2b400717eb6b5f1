package deck

// Deck is a named selection of catalog entries rendered together.
type Deck struct {
	Name     string   `json:"name"`
	EntryIDs []string `json:"entry_ids"`
}
