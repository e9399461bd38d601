package extract

import (
	"log/slog"
	"strings"
	"unicode"

	"rosterpost/internal/logging"
)

const (
	minNameLength   = 3
	maxNameLength   = 50
	minChargeLength = 5
)

// nameLabels are the field labels that introduce a full name on the next line.
var nameLabels = []string{
	"Full Name:",
	"Name:",
	"Inmate Name:",
	"Arrestee Name:",
	"Defendant Name:",
	"Subject Name:",
}

// invalidCharges are placeholder strings the roster renders when no charge is
// on file; they are never accepted as charge text.
var invalidCharges = map[string]struct{}{
	"No charge listed":                 {},
	"Charge information not available": {},
	"Severity of Charge:":              {},
	"Description:":                     {},
	"Charge Status:":                   {},
}

// invalidBails are placeholder phrases rejected case-insensitively.
var invalidBails = []string{
	"NO BAIL INFORMATION",
	"NO BAIL REQUIRED",
	"NO BAIL",
}

// mugshotAltHints mark an image element as a booking photo.
var mugshotAltHints = []string{"booking", "photo", "mugshot"}

// MugshotSaver persists an embedded image and returns a handle to the saved
// resource. Implementations derive a deterministic filename from the name.
type MugshotSaver interface {
	Save(name, sourceRef string) (string, error)
}

// Extractor parses the visible text and image elements of one detail view
// into a Record. The four field extractions are independent; a miss in one
// never aborts the others.
type Extractor struct {
	saver            MugshotSaver
	chargeScanWindow int
	logger           *slog.Logger
}

// NewExtractor builds an Extractor. chargeScanWindow bounds how many lines
// after a "Charge: 1" marker are searched for the description.
func NewExtractor(saver MugshotSaver, chargeScanWindow int, logger *slog.Logger) *Extractor {
	if chargeScanWindow <= 0 {
		chargeScanWindow = 10
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Extractor{
		saver:            saver,
		chargeScanWindow: chargeScanWindow,
		logger:           logger.With(logging.Component("extract")),
	}
}

// Extract produces a Record from the page text and embedded images. Every
// miss is represented as an absent field, not an error.
func (e *Extractor) Extract(pageText string, images []Image) Record {
	lines := splitLines(pageText)

	var record Record
	record.FullName = e.extractName(lines)
	record.Charge = e.extractCharge(lines)
	record.Bail = e.extractBail(lines)
	record.MugshotRef = e.extractMugshot(record.FullName, images)
	return record
}

func (e *Extractor) extractName(lines []string) string {
	for i, line := range lines {
		for _, label := range nameLabels {
			if !strings.Contains(line, label) || i+1 >= len(lines) {
				continue
			}
			candidate := lines[i+1]
			if ValidName(candidate) {
				e.logger.Debug("name found", logging.String("name", candidate))
				return candidate
			}
		}
	}
	e.logger.Debug("no valid name found")
	return ""
}

func (e *Extractor) extractCharge(lines []string) string {
	for i, line := range lines {
		if line != "Charge: 1" {
			continue
		}
		end := min(i+e.chargeScanWindow, len(lines))
		for j := i + 1; j < end; j++ {
			if lines[j] != "Description:" || j+1 >= len(lines) {
				continue
			}
			candidate := lines[j+1]
			if validCharge(candidate) {
				e.logger.Debug("charge found", logging.String("charge", candidate))
				return candidate
			}
		}
	}
	e.logger.Debug("no valid charge found")
	return ""
}

func (e *Extractor) extractBail(lines []string) string {
	for i, line := range lines {
		if strings.Contains(line, "Bail Options:") && i+1 < len(lines) {
			if candidate := lines[i+1]; validBail(candidate) {
				e.logger.Debug("bail found", logging.String("bail", candidate))
				return candidate
			}
			continue
		}
		if strings.Contains(line, "Bail:") {
			_, value, found := strings.Cut(line, ":")
			if !found {
				continue
			}
			candidate := strings.TrimSpace(value)
			if validBail(candidate) {
				e.logger.Debug("bail found", logging.String("bail", candidate))
				return candidate
			}
		}
	}
	e.logger.Debug("no valid bail found")
	return ""
}

func (e *Extractor) extractMugshot(name string, images []Image) string {
	if e.saver == nil {
		return ""
	}
	for _, img := range images {
		if !looksLikeMugshot(img) {
			continue
		}
		saved, err := e.saver.Save(name, img.SourceRef)
		if err != nil {
			// A failed save degrades to NoImage; admissibility filtering
			// drops the record downstream.
			e.logger.Warn("mugshot save failed", logging.Error(err))
			continue
		}
		e.logger.Debug("mugshot saved", logging.String("file", saved))
		return saved
	}
	e.logger.Debug("no mugshot image found")
	return ""
}

func looksLikeMugshot(img Image) bool {
	if img.SourceRef == "" {
		return false
	}
	if strings.Contains(img.SourceRef, "data:image") {
		return true
	}
	alt := strings.ToLower(img.AltText)
	for _, hint := range mugshotAltHints {
		if strings.Contains(alt, hint) {
			return true
		}
	}
	return false
}

// ValidName reports whether a string looks like a real full name: at least
// one space, at least one letter, and a length within [3, 50].
func ValidName(name string) bool {
	if len(name) < minNameLength || len(name) > maxNameLength {
		return false
	}
	if !strings.Contains(name, " ") {
		return false
	}
	for _, r := range name {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func validCharge(charge string) bool {
	if len(charge) < minChargeLength {
		return false
	}
	if strings.HasSuffix(charge, ":") {
		return false
	}
	_, placeholder := invalidCharges[charge]
	return !placeholder
}

func validBail(bail string) bool {
	if strings.TrimSpace(bail) == "" {
		return false
	}
	upper := strings.ToUpper(bail)
	if !strings.Contains(bail, "$") &&
		!strings.Contains(upper, "NO BAIL") &&
		!strings.Contains(upper, "RELEASED") &&
		!strings.Contains(upper, "BOND") {
		return false
	}
	trimmed := strings.ToUpper(strings.TrimSpace(bail))
	for _, placeholder := range invalidBails {
		if trimmed == placeholder {
			return false
		}
	}
	return true
}

func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}
