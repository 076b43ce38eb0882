package repos

import (
	"context"
	"testing"
)

func TestAddressGetOrCreateDedups(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	sitioRepo := NewSitioRepo(db, log)
	addressRepo := NewAddressRepo(db, log)
	ctx := context.Background()

	sitio, err := sitioRepo.GetOrCreateByName(ctx, nil, "Mahayahay")
	if err != nil {
		t.Fatalf("create sitio: %v", err)
	}

	tuple := AddressTuple{
		Province: "Cebu",
		City:     "Cebu City",
		Barangay: "San Roque",
		Street:   "Rizal St",
		SitioID:  &sitio.ID,
	}
	first, err := addressRepo.GetOrCreate(ctx, nil, tuple)
	if err != nil {
		t.Fatalf("first GetOrCreate: %v", err)
	}
	second, err := addressRepo.GetOrCreate(ctx, nil, tuple)
	if err != nil {
		t.Fatalf("second GetOrCreate: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("same tuple produced two rows: %s vs %s", first.ID, second.ID)
	}

	// A differing street is a different address.
	tuple.Street = "Mabini St"
	third, err := addressRepo.GetOrCreate(ctx, nil, tuple)
	if err != nil {
		t.Fatalf("third GetOrCreate: %v", err)
	}
	if third.ID == first.ID {
		t.Fatal("different street reused the same address row")
	}
}

func TestAddressGetOrCreateNilSitio(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	addressRepo := NewAddressRepo(db, log)
	ctx := context.Background()

	tuple := AddressTuple{
		Province:      "Leyte",
		City:          "Tacloban",
		Barangay:      "Abucay",
		Street:        "Main St",
		ExternalSitio: "Purok 3",
	}
	first, err := addressRepo.GetOrCreate(ctx, nil, tuple)
	if err != nil {
		t.Fatalf("first GetOrCreate: %v", err)
	}
	second, err := addressRepo.GetOrCreate(ctx, nil, tuple)
	if err != nil {
		t.Fatalf("second GetOrCreate: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("null-sitio tuple produced two rows: %s vs %s", first.ID, second.ID)
	}
	if second.SitioID != nil {
		t.Fatal("expected nil sitio_id")
	}
}
