package caption

import (
	"strings"
	"testing"

	"rosterpost/internal/extract"
)

func TestComposeFullRecord(t *testing.T) {
	composer := New([]string{"name", "bail"}, "Walworth County Jail", "#arrest #jail", "Arrest Alert")
	record := extract.Record{
		FullName: "DOE, JOHN A",
		Bail:     "$15,000.00",
	}

	got := composer.Compose(record, "August 30, 2026")
	want := "NAME: DOE, JOHN A\n" +
		"BAIL: $15,000.00\n\n" +
		"Arrest Date: August 30, 2026\n" +
		"Walworth County Jail\n\n" +
		"#arrest #jail"
	if got != want {
		t.Fatalf("caption mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestComposeChargeFieldOptIn(t *testing.T) {
	record := extract.Record{
		FullName: "DOE, JOHN",
		Charge:   "DISORDERLY CONDUCT",
		Bail:     "$500.00",
	}

	withoutCharge := New([]string{"name", "bail"}, "", "", "")
	if got := withoutCharge.Compose(record, ""); strings.Contains(got, "CHARGE:") {
		t.Fatalf("charge rendered without opt-in: %q", got)
	}

	withCharge := New([]string{"name", "charge", "bail"}, "", "", "")
	got := withCharge.Compose(record, "")
	if !strings.Contains(got, "CHARGE: DISORDERLY CONDUCT") {
		t.Fatalf("charge line missing: %q", got)
	}
	if idx := strings.Index(got, "NAME:"); idx > strings.Index(got, "CHARGE:") {
		t.Fatalf("field order not preserved: %q", got)
	}
}

func TestBailRendering(t *testing.T) {
	composer := New([]string{"bail"}, "", "", "")
	cases := []struct {
		name string
		bail string
		want string
	}{
		{"empty", "", "BAIL: N/A"},
		{"placeholder", "NO BAIL INFORMATION", "BAIL: N/A"},
		{"artifact leak", "Next Court Appearance: 09/12/2026", "BAIL: N/A"},
		{"amount grouped", "$15000", "BAIL: $15,000.00"},
		{"amount with cents", "Cash $2,500.50", "BAIL: $2,500.50"},
		{"no bail hold", "HOLD WITHOUT BAIL", "BAIL: HOLD WITHOUT BAIL"},
		{"released", "RELEASED", "BAIL: RELEASED"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := composer.Compose(extract.Record{FullName: "X", Bail: tc.bail}, "")
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestComposeNeverEmpty(t *testing.T) {
	composer := New([]string{"name", "charge"}, "", "", "Arrest Alert")

	got := composer.Compose(extract.Record{}, "")
	if got != "Arrest Alert - Unknown" {
		t.Fatalf("fallback mismatch: %q", got)
	}

	got = composer.Compose(extract.Record{FullName: "DOE, JANE"}, "")
	if got != "NAME: DOE, JANE" {
		t.Fatalf("got %q", got)
	}
	if got == "" {
		t.Fatal("caption must never be empty")
	}
}

func TestComposeDefaults(t *testing.T) {
	composer := New(nil, "", "", "")
	got := composer.Compose(extract.Record{FullName: "DOE, JANE", Bail: ""}, "")
	if !strings.Contains(got, "NAME: DOE, JANE") || !strings.Contains(got, "BAIL: N/A") {
		t.Fatalf("default fields not applied: %q", got)
	}
}
