package services

import (
	"testing"
	"time"
)

func TestNameMatchScore(t *testing.T) {
	ocr := "REPUBLIC OF THE PHILIPPINES\nDELA CRUZ, JUAN SANTOS\nDate of Birth: March 4, 1990"

	score := NameMatchScore(ocr, "Juan", "Santos", "Dela Cruz")
	if score != 1 {
		t.Fatalf("expected full match, got %v", score)
	}

	score = NameMatchScore(ocr, "Pedro", "Santos", "Reyes")
	if score >= 0.5 {
		t.Fatalf("expected weak match, got %v", score)
	}

	if got := NameMatchScore(ocr); got != 0 {
		t.Fatalf("expected 0 for empty name, got %v", got)
	}
}

func TestNameMatchScoreIgnoresCaseAndPunctuation(t *testing.T) {
	score := NameMatchScore("dela cruz, juan", "JUAN", "DELA", "CRUZ")
	if score != 1 {
		t.Fatalf("expected full match, got %v", score)
	}
}

func TestBirthdateMatchScore(t *testing.T) {
	dob := time.Date(1990, time.March, 4, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		text string
		want float64
	}{
		{"Date of Birth: March 4, 1990", 1},
		{"DOB 1990-03-04", 1},
		{"03/04/1990", 1},
		{"Date of Birth: April 3, 1990", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := BirthdateMatchScore(tc.text, dob); got != tc.want {
			t.Fatalf("BirthdateMatchScore(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestParseHouseLocation(t *testing.T) {
	sitio, street := parseHouseLocation("Sitio Mahayahay - Rizal St")
	if sitio != "Sitio Mahayahay" || street != "Rizal St" {
		t.Fatalf("got (%q, %q)", sitio, street)
	}

	sitio, street = parseHouseLocation("Rizal St")
	if sitio != "" || street != "Rizal St" {
		t.Fatalf("got (%q, %q)", sitio, street)
	}
}
