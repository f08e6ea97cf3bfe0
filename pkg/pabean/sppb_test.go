package pabean

import "testing"

var sppbPage = `SURAT PERSETUJUAN PENGELUARAN BARANG
 Nomor : 123456/SPPB/2024 Tanggal : 2024-05-03
Nomor Pendaftaran PIB : 654321 Tanggal : 2024-05-02
Nomor aju : 000020012345620240501
Kepada : Yth. Importir
NPWP : 01-234-567-8-901-000
NITKU : 0123456789012345
Nama : PT CONTOH IMPOR
Alamat : JL. SUDIRMAN NO. 1
Lokasi Barang : TPS GUDANG A
NPWP : 02-345-678-9-012-000
Nama : PT PPJK JAYA
Alamat : JL. GATOT SUBROTO NO. 2
NP PPJK : 12345
No. B/L atau AWB (Host) : ABCD1234 Tanggal : 2024-04-28
Nama Sarana Pengangkut : EVER GIVEN
No. Voy./Flight : 071E
Pos : 001234567890
No. BC 1.1 : 000123 Tanggal : 2024-04-27
Jumlah/jenis kemasan : 10 PACKAGE Berat : 1,250.00
Merk kemasan : -
Jumlah peti kemas : 2
Nomor Peti Kemas/Ukuran : TEMU1234567/40`

func TestExtractSPPB(t *testing.T) {
	d := ExtractSPPB([]string{sppbPage}, VariantUtama)

	if d.Sppb == nil || *d.Sppb.Nomor != "123456/SPPB/2024" || *d.Sppb.Tanggal != "2024-05-03" {
		t.Fatalf("sppb = %+v", d.Sppb)
	}
	if d.PendaftaranPIB == nil || *d.PendaftaranPIB.Nomor != "654321" {
		t.Fatalf("pendaftaran_pib = %+v", d.PendaftaranPIB)
	}
	if d.NomorAju == nil || *d.NomorAju != "000020012345620240501" {
		t.Fatalf("nomor_aju = %v", d.NomorAju)
	}

	if d.Importir.NPWP == nil || *d.Importir.NPWP != "01-234-567-8-901-000" {
		t.Fatalf("importir npwp = %v", d.Importir.NPWP)
	}
	if d.Importir.NITKU == nil || *d.Importir.NITKU != "0123456789012345" {
		t.Fatalf("importir nitku = %v", d.Importir.NITKU)
	}
	if d.Importir.Nama == nil || *d.Importir.Nama != "PT CONTOH IMPOR" {
		t.Fatalf("importir nama = %v", d.Importir.Nama)
	}
	if d.Importir.Alamat == nil || *d.Importir.Alamat != "JL. SUDIRMAN NO. 1" {
		t.Fatalf("importir alamat = %v", d.Importir.Alamat)
	}

	// The second NPWP label in the document belongs to the broker.
	if d.Ppjk.NPWP == nil || *d.Ppjk.NPWP != "02-345-678-9-012-000" {
		t.Fatalf("ppjk npwp = %v", d.Ppjk.NPWP)
	}
	if d.Ppjk.Nama == nil || *d.Ppjk.Nama != "PT PPJK JAYA" {
		t.Fatalf("ppjk nama = %v", d.Ppjk.Nama)
	}
	if d.Ppjk.NpPpjk == nil || *d.Ppjk.NpPpjk != "12345" {
		t.Fatalf("np_ppjk = %v", d.Ppjk.NpPpjk)
	}

	if d.LokasiBarang == nil || *d.LokasiBarang != "TPS GUDANG A" {
		t.Fatalf("lokasi_barang = %v", d.LokasiBarang)
	}
	if d.Awb == nil || *d.Awb.Nomor != "ABCD1234" || *d.Awb.Tanggal != "2024-04-28" {
		t.Fatalf("awb = %+v", d.Awb)
	}
	if d.Sarana.Nama == nil || *d.Sarana.Nama != "EVER GIVEN" {
		t.Fatalf("sarana nama = %v", d.Sarana.Nama)
	}
	if d.Sarana.VoyFlight == nil || *d.Sarana.VoyFlight != "071E" {
		t.Fatalf("voy_flight = %v", d.Sarana.VoyFlight)
	}

	// The pos number is hunted in the text surrounding the BC 1.1 line.
	if d.BC11 == nil || *d.BC11.Nomor != "000123" || *d.BC11.Tanggal != "2024-04-27" {
		t.Fatalf("bc11 = %+v", d.BC11)
	}
	if d.BC11.Pos == nil || *d.BC11.Pos != "001234567890" {
		t.Fatalf("bc11 pos = %v", d.BC11.Pos)
	}

	if d.Kemasan.JumlahJenis == nil || *d.Kemasan.JumlahJenis != "10 PACKAGE" {
		t.Fatalf("jumlah_jenis = %v", d.Kemasan.JumlahJenis)
	}
	if d.Kemasan.Merk != nil {
		t.Fatalf("merk should be nil for '-', got %v", *d.Kemasan.Merk)
	}
	if d.Kemasan.JumlahPetiKemas == nil || *d.Kemasan.JumlahPetiKemas != "2" {
		t.Fatalf("jumlah_peti_kemas = %v", d.Kemasan.JumlahPetiKemas)
	}
	if d.Kemasan.NomorPetiKemasUkuran == nil || *d.Kemasan.NomorPetiKemasUkuran != "TEMU1234567/40" {
		t.Fatalf("nomor_peti_kemas = %v", d.Kemasan.NomorPetiKemasUkuran)
	}
	if d.Kemasan.Berat == nil || *d.Kemasan.Berat != "1,250.00" {
		t.Fatalf("berat = %v", d.Kemasan.Berat)
	}
}

func TestExtractSPPBLegacyBC11Inline(t *testing.T) {
	page := `SURAT PERSETUJUAN PENGELUARAN BARANG
 Nomor : 99/SPPB/2024 Tanggal : 2024-05-03
No. BC 1.1 : 000777 Tanggal : 2024-04-27 Pos : 0001`

	d := ExtractSPPB([]string{page}, VariantLegacy)
	if d.BC11 == nil || *d.BC11.Nomor != "000777" {
		t.Fatalf("bc11 = %+v", d.BC11)
	}
	if d.BC11.Pos == nil || *d.BC11.Pos != "0001" {
		t.Fatalf("bc11 pos = %v", d.BC11.Pos)
	}

	// The production rule would not find a 10-15 digit pos here.
	du := ExtractSPPB([]string{page}, VariantUtama)
	if du.BC11 == nil || du.BC11.Pos != nil {
		t.Fatalf("utama bc11 = %+v", du.BC11)
	}
}

func TestExtractSPPBBeratNearKemasan(t *testing.T) {
	page := `123.4567
Jumlah/jenis kemasan : 5 PACKAGE
Berat : KGM`

	d := ExtractSPPB([]string{page}, VariantUtama)
	if d.Kemasan.Berat == nil || *d.Kemasan.Berat != "123.4567" {
		t.Fatalf("berat = %v", d.Kemasan.Berat)
	}
	if d.Kemasan.JumlahJenis == nil || *d.Kemasan.JumlahJenis != "5 PACKAGE" {
		t.Fatalf("jumlah_jenis = %v", d.Kemasan.JumlahJenis)
	}
}

func TestExtractSPPBEmptyDocument(t *testing.T) {
	d := ExtractSPPB([]string{""}, VariantUtama)
	if d.Sppb != nil || d.BC11 != nil || d.NomorAju != nil {
		t.Fatalf("expected empty result, got %+v", d)
	}
}
