package cards

// Entry is one catalog item a card can be rendered for.
type Entry struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Provider string `json:"provider"`
	ImageURL string `json:"image_url"`
	Link     string `json:"link,omitempty"`
}
