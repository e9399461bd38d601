package extract

import "strings"

// Record is one inmate candidate produced from a detail view. Optional fields
// use the empty string as their absent value; only the name and mugshot gate
// admissibility.
type Record struct {
	FullName   string `json:"full_name"`
	Charge     string `json:"charge,omitempty"`
	Bail       string `json:"bail,omitempty"`
	MugshotRef string `json:"mugshot_file,omitempty"`
}

// HasCharge reports whether an admissible charge was extracted.
func (r Record) HasCharge() bool { return strings.TrimSpace(r.Charge) != "" }

// HasBail reports whether admissible bail text was extracted.
func (r Record) HasBail() bool { return strings.TrimSpace(r.Bail) != "" }

// HasMugshot reports whether a mugshot resource was saved for this record.
func (r Record) HasMugshot() bool { return strings.TrimSpace(r.MugshotRef) != "" }

// Image is one embedded image element of a detail view.
type Image struct {
	SourceRef string
	AltText   string
}
