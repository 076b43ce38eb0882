package idgen

import (
	"testing"
	"time"
)

var day = time.Date(2026, time.August, 31, 10, 30, 0, 0, time.UTC)

func TestFormatResidentID(t *testing.T) {
	got := FormatResidentID(day, 42)
	if got != "26083100042" {
		t.Fatalf("FormatResidentID: got %q", got)
	}
}

func TestResidentIDRoundTrip(t *testing.T) {
	id := FormatResidentID(day, 42)
	ts, seq, err := ParseResidentID(id)
	if err != nil {
		t.Fatalf("ParseResidentID(%q): %v", id, err)
	}
	if seq != 42 {
		t.Fatalf("seq: got %d want 42", seq)
	}
	y, m, d := ts.Date()
	if y != 2026 || m != time.August || d != 31 {
		t.Fatalf("date: got %v", ts)
	}
}

func TestHouseholdIDRoundTrip(t *testing.T) {
	id := FormatHouseholdID(day, 7)
	if id != "HH-2608-00007" {
		t.Fatalf("FormatHouseholdID: got %q", id)
	}
	ts, seq, err := ParseHouseholdID(id)
	if err != nil {
		t.Fatalf("ParseHouseholdID(%q): %v", id, err)
	}
	if seq != 7 || ts.Year() != 2026 || ts.Month() != time.August {
		t.Fatalf("round trip: ts=%v seq=%d", ts, seq)
	}
}

func TestFamilyIDRoundTrip(t *testing.T) {
	id := FormatFamilyID(day, 15, "Renter")
	if id != "260831000015-R" {
		t.Fatalf("FormatFamilyID: got %q", id)
	}
	ts, seq, code, err := ParseFamilyID(id)
	if err != nil {
		t.Fatalf("ParseFamilyID(%q): %v", id, err)
	}
	if seq != 15 || code != "R" {
		t.Fatalf("round trip: seq=%d code=%q", seq, code)
	}
	if y, m, d := ts.Date(); y != 2026 || m != time.August || d != 31 {
		t.Fatalf("date: got %v", ts)
	}
}

func TestBusinessIDRoundTrip(t *testing.T) {
	id := FormatBusinessID(day, 3)
	if id != "BUS-2608-00003" {
		t.Fatalf("FormatBusinessID: got %q", id)
	}
	if _, seq, err := ParseBusinessID(id); err != nil || seq != 3 {
		t.Fatalf("ParseBusinessID(%q): seq=%d err=%v", id, seq, err)
	}
}

func TestBusinessRespondentIDRoundTrip(t *testing.T) {
	id := FormatBusinessRespondentID(day, 88)
	if id != "BR-260831-00088" {
		t.Fatalf("FormatBusinessRespondentID: got %q", id)
	}
	if _, seq, err := ParseBusinessRespondentID(id); err != nil || seq != 88 {
		t.Fatalf("ParseBusinessRespondentID(%q): seq=%d err=%v", id, seq, err)
	}
}

func TestOccupancyCode(t *testing.T) {
	cases := map[string]string{
		"Owner":  "O",
		"owner":  "O",
		"Renter": "R",
		"Sharer": "S",
		"Other":  "S",
		"":       "S",
	}
	for in, want := range cases {
		if got := OccupancyCode(in); got != want {
			t.Fatalf("OccupancyCode(%q): got %q want %q", in, got, want)
		}
	}
}

// IDs issued on the same day must sort lexicographically in issue order.
func TestSameDayIDsSortInIssueOrder(t *testing.T) {
	var prev string
	for seq := int64(1); seq <= 120; seq++ {
		id := FormatResidentID(day, seq)
		if prev != "" && !(id > prev) {
			t.Fatalf("resident id %q not greater than %q", id, prev)
		}
		prev = id
	}

	prev = ""
	for seq := int64(1); seq <= 120; seq++ {
		id := FormatFamilyID(day, seq, "Owner")
		if prev != "" && !(id > prev) {
			t.Fatalf("family id %q not greater than %q", id, prev)
		}
		prev = id
	}
}

// Sequences past the 5-digit padding widen the tail; parsing must still
// recover them.
func TestParseAcceptsWidenedSequence(t *testing.T) {
	id := FormatResidentID(day, 100001)
	if id != "260831100001" {
		t.Fatalf("FormatResidentID: got %q", id)
	}
	ts, seq, err := ParseResidentID(id)
	if err != nil {
		t.Fatalf("ParseResidentID(%q): %v", id, err)
	}
	if seq != 100001 {
		t.Fatalf("seq: got %d want 100001", seq)
	}
	if y, m, d := ts.Date(); y != 2026 || m != time.August || d != 31 {
		t.Fatalf("date: got %v", ts)
	}

	famID := FormatFamilyID(day, 10001, "Owner")
	if _, seq, code, err := ParseFamilyID(famID); err != nil || seq != 10001 || code != "O" {
		t.Fatalf("ParseFamilyID(%q): seq=%d code=%q err=%v", famID, seq, code, err)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	if _, _, err := ParseResidentID("2608310004"); err == nil {
		t.Fatal("short resident id accepted")
	}
	if _, _, err := ParseHouseholdID("HX-2608-00007"); err == nil {
		t.Fatal("bad household prefix accepted")
	}
	if _, _, _, err := ParseFamilyID("260831000015R"); err == nil {
		t.Fatal("family id without code separator accepted")
	}
	if _, _, err := ParseBusinessID("BUS-2613-00001"); err == nil {
		t.Fatal("month 13 accepted")
	}
	if _, _, err := ParseResidentID("26083100000"); err == nil {
		t.Fatal("zero sequence accepted")
	}
}
