package inertia

// Page is the page object exchanged with the Inertia client. It is sent as
// the JSON body of Inertia visits and embedded in the root view on full
// page loads.
type Page struct {
	Component      string              `json:"component"`
	Props          map[string]any      `json:"props"`
	URL            string              `json:"url"`
	Version        *string             `json:"version"`
	EncryptHistory bool                `json:"encryptHistory"`
	ClearHistory   bool                `json:"clearHistory"`
	MergeProps     []string            `json:"mergeProps,omitempty"`
	DeferredProps  map[string][]string `json:"deferredProps,omitempty"`
}

// VersionString returns the page version, or "" when none is configured.
func (p *Page) VersionString() string {
	if p.Version == nil {
		return ""
	}
	return *p.Version
}
