package idgen

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Canonical human-readable ID formats. The registered date is encoded as
// YYMMDD (or YYMM) and the claimed sequence number is zero-padded so IDs
// issued the same day sort lexicographically in issue order. Sequences past
// the padded range widen the tail; parsers accept both widths.
//
//	resident             {YY}{MM}{DD}{NNNNN}
//	household            HH-{YY}{MM}-{NNNNN}
//	family               {YY}{MM}{DD}00{NNNN}-{O|R|S}
//	business             BUS-{YY}{MM}-{NNNNN}
//	business respondent  BR-{YY}{MM}{DD}-{NNNNN}

const (
	dayLayout   = "060102"
	monthLayout = "0601"
)

// OccupancyCode maps a family's building type to the single-letter code
// carried at the tail of its FamID. Anything outside Owner/Renter falls into
// the shared/other bucket.
func OccupancyCode(buildingType string) string {
	switch strings.ToLower(strings.TrimSpace(buildingType)) {
	case "owner":
		return "O"
	case "renter":
		return "R"
	default:
		return "S"
	}
}

func FormatResidentID(t time.Time, seq int64) string {
	return fmt.Sprintf("%s%05d", t.Format(dayLayout), seq)
}

// ParseResidentID accepts the padded 5-digit tail and the wider tails that
// appear once a day's sequence outgrows the padding.
func ParseResidentID(id string) (time.Time, int64, error) {
	if len(id) < len(dayLayout)+5 {
		return time.Time{}, 0, fmt.Errorf("malformed resident id %q", id)
	}
	return parseDateSeq(id[:len(dayLayout)], dayLayout, id[len(dayLayout):], id)
}

func FormatHouseholdID(t time.Time, seq int64) string {
	return fmt.Sprintf("HH-%s-%05d", t.Format(monthLayout), seq)
}

func ParseHouseholdID(id string) (time.Time, int64, error) {
	rest, ok := strings.CutPrefix(id, "HH-")
	if !ok {
		return time.Time{}, 0, fmt.Errorf("malformed household id %q", id)
	}
	datePart, seqPart, ok := strings.Cut(rest, "-")
	if !ok {
		return time.Time{}, 0, fmt.Errorf("malformed household id %q", id)
	}
	return parseDateSeq(datePart, monthLayout, seqPart, id)
}

func FormatFamilyID(t time.Time, seq int64, buildingType string) string {
	return fmt.Sprintf("%s00%04d-%s", t.Format(dayLayout), seq, OccupancyCode(buildingType))
}

// ParseFamilyID recovers the registration date, sequence number and
// occupancy code from a FamID.
func ParseFamilyID(id string) (time.Time, int64, string, error) {
	body, code, ok := strings.Cut(id, "-")
	if !ok || len(code) != 1 || len(body) < len(dayLayout)+6 {
		return time.Time{}, 0, "", fmt.Errorf("malformed family id %q", id)
	}
	if body[len(dayLayout):len(dayLayout)+2] != "00" {
		return time.Time{}, 0, "", fmt.Errorf("malformed family id %q", id)
	}
	t, seq, err := parseDateSeq(body[:len(dayLayout)], dayLayout, body[len(dayLayout)+2:], id)
	if err != nil {
		return time.Time{}, 0, "", err
	}
	return t, seq, code, nil
}

func FormatBusinessID(t time.Time, seq int64) string {
	return fmt.Sprintf("BUS-%s-%05d", t.Format(monthLayout), seq)
}

func ParseBusinessID(id string) (time.Time, int64, error) {
	rest, ok := strings.CutPrefix(id, "BUS-")
	if !ok {
		return time.Time{}, 0, fmt.Errorf("malformed business id %q", id)
	}
	datePart, seqPart, ok := strings.Cut(rest, "-")
	if !ok {
		return time.Time{}, 0, fmt.Errorf("malformed business id %q", id)
	}
	return parseDateSeq(datePart, monthLayout, seqPart, id)
}

func FormatBusinessRespondentID(t time.Time, seq int64) string {
	return fmt.Sprintf("BR-%s-%05d", t.Format(dayLayout), seq)
}

func ParseBusinessRespondentID(id string) (time.Time, int64, error) {
	rest, ok := strings.CutPrefix(id, "BR-")
	if !ok {
		return time.Time{}, 0, fmt.Errorf("malformed business respondent id %q", id)
	}
	datePart, seqPart, ok := strings.Cut(rest, "-")
	if !ok {
		return time.Time{}, 0, fmt.Errorf("malformed business respondent id %q", id)
	}
	return parseDateSeq(datePart, dayLayout, seqPart, id)
}

func parseDateSeq(datePart, layout, seqPart, full string) (time.Time, int64, error) {
	t, err := time.Parse(layout, datePart)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("malformed date in id %q: %w", full, err)
	}
	seq, err := strconv.ParseInt(seqPart, 10, 64)
	if err != nil || seq < 1 {
		return time.Time{}, 0, fmt.Errorf("malformed sequence in id %q", full)
	}
	return t, seq, nil
}
