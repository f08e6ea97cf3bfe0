package pabean

import (
	"errors"
	"testing"
)

var pibPage1 = `Nomor Pengajuan :20012345 Tanggal Pengajuan :2024-05-01
Kantor Pabean :KPU BEA DAN CUKAI TIPE A TANJUNG PRIOK
2. Identitas : 123456789012345
3. Nama, Alamat :PT CONTOH IMPOR
JL. SUDIRMAN NO. 1 JAKARTA
5. NIB : 1234567890123
10. Nama Sarana Pengangkutan & No. Voy/Flight dan Bendera : US
GERMANY
FEDERAL EXPRESS CORPORATION
FX5194 UNITED STATES
11. Perkiraan Tanggal Tiba :2024-05-10
12. Pelabuhan Muat :CFS HONG KONG HKHKG
13. Pelabuhan Transit :PORT KLANG MYPKG
14. Pelabuhan Tujuan :TANJUNG PRIOK IDTPP
15. Invoice : No. 778899 Tgl.2024-04-20
House-BL/AWB : ABC12345678
Master-BL/AWB : XYZ98765432
Nomor : 445566 Tanggal : 2024-05-02`

var pibPage2 = `Berat Bersih (Kg) 1,250.00
12345678 Kode Brg : 0001
Harga BYR 1,000.00 - 25,000,000.00
Uraian :STEEL PIPES (PCE)
Kondisi Brg : BARU Negara : CHINA
catatan: pemeriksaan fisik dilakukan di tempat penimbunan sementara,
dokumen pelengkap diserahkan melalui portal pengguna jasa sesuai dengan
ketentuan yang berlaku, lembar lanjutan memuat rincian tambahan untuk
masing-masing pos tarif berikut ini pada halaman berikutnya dokumen.
84729090 Kode Brg : 0002
Harga BYR 5.00 - 1,500.75
Uraian :BULK CARGO METRIC TON
Kondisi Brg : BARU Negara : JAPAN
akhir dokumen`

func TestExtractPIBUtama(t *testing.T) {
	d, err := ExtractPIB([]string{pibPage1, pibPage2}, VariantUtama)
	if err != nil {
		t.Fatalf("ExtractPIB: %v", err)
	}
	if d.NomorPengajuan == nil || *d.NomorPengajuan != "20012345" {
		t.Fatalf("nomor_pengajuan = %v", d.NomorPengajuan)
	}
	if d.TanggalPengajuan == nil || *d.TanggalPengajuan != "2024-05-01" {
		t.Fatalf("tanggal_pengajuan = %v", d.TanggalPengajuan)
	}
	if d.Importir.Identitas == nil || *d.Importir.Identitas != "123456789012345" {
		t.Fatalf("identitas = %v", d.Importir.Identitas)
	}
	if d.Importir.Nama == nil || *d.Importir.Nama != "PT CONTOH IMPOR" {
		t.Fatalf("importir nama = %v", d.Importir.Nama)
	}
	if d.Importir.NIB == nil || *d.Importir.NIB != "1234567890123" {
		t.Fatalf("nib = %v", d.Importir.NIB)
	}
	if d.InvoiceNo == nil || *d.InvoiceNo != "778899" {
		t.Fatalf("invoice_no = %v", d.InvoiceNo)
	}
	if d.InvoiceDate == nil || *d.InvoiceDate != "2024-04-20" {
		t.Fatalf("invoice_date = %v", d.InvoiceDate)
	}
	if d.PerkiraanTiba == nil || *d.PerkiraanTiba != "2024-05-10" {
		t.Fatalf("perkiraan_tiba = %v", d.PerkiraanTiba)
	}

	// Port fields keep only the trailing port code.
	if d.Pelabuhan.Muat == nil || *d.Pelabuhan.Muat != "HKHKG" {
		t.Fatalf("pelabuhan muat = %v", d.Pelabuhan.Muat)
	}
	if d.Pelabuhan.Tujuan == nil || *d.Pelabuhan.Tujuan != "IDTPP" {
		t.Fatalf("pelabuhan tujuan = %v", d.Pelabuhan.Tujuan)
	}

	if d.Sarana.VoyageFlight == nil || *d.Sarana.VoyageFlight != "FX5194" {
		t.Fatalf("voyage_flight = %v", d.Sarana.VoyageFlight)
	}
	if d.Pendaftaran == nil || *d.Pendaftaran.Nomor != "445566" || *d.Pendaftaran.Tanggal != "2024-05-02" {
		t.Fatalf("pendaftaran = %+v", d.Pendaftaran)
	}

	// The 3-char carrier prefix is cut off both BL/AWB numbers.
	if d.BlAwb.HouseBlAwb == nil || *d.BlAwb.HouseBlAwb != "12345678" {
		t.Fatalf("house_bl_awb = %v", d.BlAwb.HouseBlAwb)
	}
	if d.BlAwb.MasterBlAwb == nil || *d.BlAwb.MasterBlAwb != "98765432" {
		t.Fatalf("master_bl_awb = %v", d.BlAwb.MasterBlAwb)
	}
}

func TestExtractPIBBarangUtama(t *testing.T) {
	d, err := ExtractPIB([]string{pibPage1, pibPage2}, VariantUtama)
	if err != nil {
		t.Fatalf("ExtractPIB: %v", err)
	}
	if len(d.Barang) != 2 {
		t.Fatalf("expected 2 barang, got %d", len(d.Barang))
	}

	b := d.Barang[0]
	if b.HsCode != "12345678" {
		t.Fatalf("hs_code = %q", b.HsCode)
	}
	if b.JumlahSatuan == nil || *b.JumlahSatuan != "1000,00" {
		t.Fatalf("jumlah_satuan = %v", b.JumlahSatuan)
	}
	if b.NilaiPabean != "25000000.00" {
		t.Fatalf("nilai_pabean = %q", b.NilaiPabean)
	}
	if b.Uraian != "STEEL PIPES (PCE)" {
		t.Fatalf("uraian = %q", b.Uraian)
	}
	if b.Kondisi != "BARU" || b.Negara != "CHINA" {
		t.Fatalf("kondisi/negara = %q/%q", b.Kondisi, b.Negara)
	}
	if b.KodeSatuan == nil || *b.KodeSatuan != "PCE" {
		t.Fatalf("kode_satuan = %v", b.KodeSatuan)
	}

	// The net-weight figure wins over jumlah satuan for every item.
	if b.Qty != "1250.00" || d.Barang[1].Qty != "1250.00" {
		t.Fatalf("qty = %q / %q", b.Qty, d.Barang[1].Qty)
	}

	// METRIC TON in the description forces TNE.
	b2 := d.Barang[1]
	if b2.KodeSatuan == nil || *b2.KodeSatuan != "TNE" {
		t.Fatalf("kode_satuan item 2 = %v", b2.KodeSatuan)
	}
	if b2.Negara != "JAPAN" {
		t.Fatalf("negara item 2 = %q", b2.Negara)
	}
}

func TestExtractPIBLegacy(t *testing.T) {
	d, err := ExtractPIB([]string{pibPage1, pibPage2}, VariantLegacy)
	if err != nil {
		t.Fatalf("ExtractPIB: %v", err)
	}

	// Legacy keeps the raw port value.
	if d.Pelabuhan.Muat == nil || *d.Pelabuhan.Muat != "CFS HONG KONG HKHKG" {
		t.Fatalf("pelabuhan muat = %v", d.Pelabuhan.Muat)
	}

	b := d.Barang[0]
	if b.JumlahSatuan != nil {
		t.Fatalf("jumlah_satuan should be unset, got %v", *b.JumlahSatuan)
	}
	qty, err := b.QtyValue()
	if err != nil || qty != 1000 {
		t.Fatalf("qty = %v err=%v", qty, err)
	}
	nilai, err := b.NilaiPabeanValue()
	if err != nil || nilai != 25000000 {
		t.Fatalf("nilai_pabean = %v err=%v", nilai, err)
	}
	// Legacy reports the unit words, not the code.
	if b.KodeSatuan == nil || *b.KodeSatuan != "STEEL PIPES" {
		t.Fatalf("kode_satuan = %v", b.KodeSatuan)
	}
}

func TestExtractPIBNoBarang(t *testing.T) {
	_, err := ExtractPIB([]string{pibPage1}, VariantUtama)
	if !errors.Is(err, ErrNoBarang) {
		t.Fatalf("expected ErrNoBarang, got %v", err)
	}
}

func TestExtractPIBFormatBaru(t *testing.T) {
	page := `Pos Tarif : 87654321 lanjutan
Harga BYR 100.00 - 2,000.00
OFFICE CHAIRS (PCE)
Kondisi Brg : BARU Negara : KOREA
akhir`
	d, err := ExtractPIB([]string{page}, VariantUtama)
	if err != nil {
		t.Fatalf("ExtractPIB: %v", err)
	}
	if len(d.Barang) != 1 {
		t.Fatalf("expected 1 barang, got %d", len(d.Barang))
	}
	b := d.Barang[0]
	if b.HsCode != "87654321" {
		t.Fatalf("hs_code = %q", b.HsCode)
	}
	if b.NilaiPabean != "2000.00" {
		t.Fatalf("nilai_pabean = %q", b.NilaiPabean)
	}
	if b.KodeSatuan == nil || *b.KodeSatuan != "PCE" {
		t.Fatalf("kode_satuan = %v", b.KodeSatuan)
	}
	// No net-weight figure in the document, so jumlah satuan is the qty.
	if b.Qty != "100,00" {
		t.Fatalf("qty = %q", b.Qty)
	}
}
