// Package export writes the per-cycle roster CSV. The file is a full
// overwrite each cycle; the archive database holds the durable history.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"rosterpost/internal/extract"
	"rosterpost/internal/fileutil"
)

var header = []string{"Full Name", "Charge 1", "Bail", "Mugshot_File"}

// WriteCSV replaces the file at path with one row per record. The write is
// atomic so readers never observe a partial file.
func WriteCSV(path string, records []extract.Record) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, record := range records {
		row := []string{record.FullName, record.Charge, record.Bail, record.MugshotRef}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row for %q: %w", record.FullName, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	if err := fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write csv file: %w", err)
	}
	return nil
}
