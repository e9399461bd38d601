// Package caption renders queued records into outbound post text.
//
// The template is configuration-driven: the field list decides whether name,
// charge, and bail appear, resolving the charge-line back-and-forth between
// pipeline revisions without hard-coding either answer. Output is never
// empty; fully degenerate input falls back to a minimal alert line.
package caption

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"rosterpost/internal/extract"
)

// bailPlaceholders are phrases that mean "no usable bail text". They render
// as N/A rather than leaking roster noise into the post.
var bailPlaceholders = []string{
	"NO BAIL INFORMATION",
	"NO BAIL REQUIRED",
	"NO BAIL",
}

// bailArtifacts mark extraction leakage: text from neighboring fields that
// slipped into the bail value on malformed detail views.
var bailArtifacts = []string{
	"NEXT COURT APPEARANCE",
}

// Composer renders records using a fixed field layout.
type Composer struct {
	fields     []string
	location   string
	hashtags   string
	alertLabel string
	printer    *message.Printer
}

// New builds a Composer. fields selects the rendered lines in order;
// supported values are "name", "charge", and "bail".
func New(fields []string, location, hashtags, alertLabel string) *Composer {
	if len(fields) == 0 {
		fields = []string{"name", "bail"}
	}
	if alertLabel == "" {
		alertLabel = "Arrest Alert"
	}
	return &Composer{
		fields:     fields,
		location:   location,
		hashtags:   hashtags,
		alertLabel: alertLabel,
		printer:    message.NewPrinter(language.English),
	}
}

// Compose renders one record. arrestDateText is the caller-formatted civil
// date of the scrape. The result is always non-empty.
func (c *Composer) Compose(record extract.Record, arrestDateText string) string {
	var lines []string
	for _, field := range c.fields {
		switch field {
		case "name":
			if name := strings.TrimSpace(record.FullName); name != "" {
				lines = append(lines, "NAME: "+name)
			}
		case "charge":
			if record.HasCharge() {
				lines = append(lines, "CHARGE: "+strings.TrimSpace(record.Charge))
			}
		case "bail":
			lines = append(lines, "BAIL: "+c.bailText(record.Bail))
		}
	}

	if len(lines) == 0 {
		// Degenerate record: fall back to a minimal alert keyed on whatever
		// name text exists.
		name := strings.TrimSpace(record.FullName)
		if name == "" {
			name = "Unknown"
		}
		lines = append(lines, c.alertLabel+" - "+name)
	}

	var b strings.Builder
	b.WriteString(strings.Join(lines, "\n"))
	if arrestDateText != "" {
		b.WriteString("\n\nArrest Date: ")
		b.WriteString(arrestDateText)
	}
	if c.location != "" {
		b.WriteString("\n")
		b.WriteString(c.location)
	}
	if c.hashtags != "" {
		b.WriteString("\n\n")
		b.WriteString(c.hashtags)
	}
	return b.String()
}

// bailText normalizes bail for rendering: placeholders, artifacts, and empty
// text become "N/A"; recognizable amounts are reformatted with comma
// grouping; anything else passes through trimmed.
func (c *Composer) bailText(bail string) string {
	trimmed := strings.TrimSpace(bail)
	if trimmed == "" {
		return "N/A"
	}
	upper := strings.ToUpper(trimmed)
	for _, artifact := range bailArtifacts {
		if strings.Contains(upper, artifact) {
			return "N/A"
		}
	}
	for _, placeholder := range bailPlaceholders {
		if upper == placeholder {
			return "N/A"
		}
	}
	if amount := extract.ParseBailAmount(trimmed); amount > 0 && amount != extract.NoBailAmount {
		return c.printer.Sprintf("$%.2f", amount)
	}
	return trimmed
}
