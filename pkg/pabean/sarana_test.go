package pabean

import "testing"

func TestExtractSaranaFlightLine(t *testing.T) {
	text := `9. Cara Pembayaran : BIASA
10. Nama Sarana Pengangkutan & No. Voy/Flight dan Bendera : US
GERMANY
FEDERAL EXPRESS CORPORATION
FX5194 UNITED STATES
11. Perkiraan Tanggal Tiba :2024-05-10`

	r := ExtractSarana(text)
	if r.KodeBendera == nil || *r.KodeBendera != "US" {
		t.Fatalf("kode_bendera = %v", r.KodeBendera)
	}
	if r.VoyageFlight == nil || *r.VoyageFlight != "FX5194" {
		t.Fatalf("voyage_flight = %v", r.VoyageFlight)
	}
	if r.Bendera == nil || *r.Bendera != "UNITED STATES" {
		t.Fatalf("bendera = %v", r.Bendera)
	}
	if r.Nama == nil || *r.Nama != "FEDERAL EXPRESS CORPORATION" {
		t.Fatalf("nama = %v", r.Nama)
	}
	if r.Negara == nil || *r.Negara != "GERMANY" {
		t.Fatalf("negara = %v", r.Negara)
	}
}

func TestExtractSaranaNumericDashVoyage(t *testing.T) {
	text := `10. Nama Sarana Pengangkutan & No. Voy/Flight dan Bendera : PA
TAIWAN
EVER BOOMY
1147-082A PANAMA
11. Perkiraan Tanggal Tiba :2024-05-10`

	r := ExtractSarana(text)
	if r.VoyageFlight == nil || *r.VoyageFlight != "1147-082A" {
		t.Fatalf("voyage_flight = %v", r.VoyageFlight)
	}
	if r.Bendera == nil || *r.Bendera != "PANAMA" {
		t.Fatalf("bendera = %v", r.Bendera)
	}
	if r.Nama == nil || *r.Nama != "EVER BOOMY" {
		t.Fatalf("nama = %v", r.Nama)
	}
	if r.Negara == nil || *r.Negara != "TAIWAN" {
		t.Fatalf("negara = %v", r.Negara)
	}
}

// A bare one-digit voyage defeats the primary strategy and must fall
// through to the alternate one.
func TestExtractSaranaBareNumberVoyage(t *testing.T) {
	text := `10. Nama Sarana Pengangkutan & No. Voy/Flight dan Bendera : PA
CHINA
EVER BOOMY
3
PANAMA
11. Perkiraan Tanggal Tiba :2024-05-10`

	r := ExtractSarana(text)
	if r.VoyageFlight == nil || *r.VoyageFlight != "3" {
		t.Fatalf("voyage_flight = %v", r.VoyageFlight)
	}
	if r.Bendera == nil || *r.Bendera != "PANAMA" {
		t.Fatalf("bendera = %v", r.Bendera)
	}
	if r.Nama == nil || *r.Nama != "EVER BOOMY" {
		t.Fatalf("nama = %v", r.Nama)
	}
	if r.KodeBendera == nil || *r.KodeBendera != "PA" {
		t.Fatalf("kode_bendera = %v", r.KodeBendera)
	}
}

// Voyage number and flag on one line, "3 PANAMA" style.
func TestExtractSaranaNumberCountryLine(t *testing.T) {
	text := `10. Nama Sarana Pengangkutan & No. Voy/Flight dan Bendera : PA
MERATUS MEDAN
3 PANAMA
11. Perkiraan Tanggal Tiba :2024-05-10`

	r := ExtractSarana(text)
	if r.VoyageFlight == nil || *r.VoyageFlight != "3" {
		t.Fatalf("voyage_flight = %v", r.VoyageFlight)
	}
	if r.Bendera == nil || *r.Bendera != "PANAMA" {
		t.Fatalf("bendera = %v", r.Bendera)
	}
	if r.Nama == nil || *r.Nama != "MERATUS MEDAN" {
		t.Fatalf("nama = %v", r.Nama)
	}
	if r.KodeBendera == nil || *r.KodeBendera != "PA" {
		t.Fatalf("kode_bendera = %v", r.KodeBendera)
	}
}

func TestExtractSaranaSellerNoiseSkipped(t *testing.T) {
	text := `10. Nama Sarana Pengangkutan & No. Voy/Flight dan Bendera :
PENJUAL SG/TW/DE
1 PACKAGE
MY INDO AIRLINES
2Y6011 INDONESIA
11. Perkiraan Tanggal Tiba :2024-05-10`

	r := ExtractSarana(text)
	if r.VoyageFlight == nil || *r.VoyageFlight != "2Y6011" {
		t.Fatalf("voyage_flight = %v", r.VoyageFlight)
	}
	if r.Bendera == nil || *r.Bendera != "INDONESIA" {
		t.Fatalf("bendera = %v", r.Bendera)
	}
	if r.Nama == nil || *r.Nama != "MY INDO AIRLINES" {
		t.Fatalf("nama = %v", r.Nama)
	}
}

func TestExtractSaranaMissingLabel(t *testing.T) {
	r := ExtractSarana("no carrier section in this document at all")
	if r.KodeBendera != nil || r.Negara != nil || r.Nama != nil || r.VoyageFlight != nil || r.Bendera != nil {
		t.Fatalf("expected empty result, got %+v", r)
	}
}

func TestExtractSaranaKodeFromLabelTail(t *testing.T) {
	text := `10. Nama Sarana Pengangkutan & No. Voy/Flight dan Bendera : KAPAL ID
MY INDO AIRLINES
2Y6011 INDONESIA
11. Perkiraan Tanggal Tiba :2024-05-10`

	r := ExtractSarana(text)
	if r.KodeBendera == nil || *r.KodeBendera != "ID" {
		t.Fatalf("kode_bendera = %v", r.KodeBendera)
	}
	if r.VoyageFlight == nil || *r.VoyageFlight != "2Y6011" {
		t.Fatalf("voyage_flight = %v", r.VoyageFlight)
	}
}
