package testsupport

import (
	"encoding/base64"

	"rosterpost/internal/extract"
	"rosterpost/internal/roster"
)

// InlineImage builds a data-URL source ref around the given payload, the
// form mugshot images arrive in from detail pages.
func InlineImage(payload string) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte(payload))
}

// Record builds an admissible record with the given name and bail text.
func Record(name, bail string) extract.Record {
	return extract.Record{
		FullName:   name,
		Bail:       bail,
		MugshotRef: "mugshot_" + name + ".jpg",
	}
}

// DetailView builds an in-memory detail page that extracts into an
// admissible record.
func DetailView(name, bail string) roster.StaticView {
	return roster.StaticView{
		Text: "Name:\n" + name + "\nBail Options:\n" + bail,
		ImageList: []extract.Image{
			{SourceRef: InlineImage("image-" + name), AltText: "booking photo"},
		},
	}
}
