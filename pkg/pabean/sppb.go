package pabean

import (
	"regexp"
	"strings"
)

var (
	sppbHeaderRe     = regexp.MustCompile(`(?s)SURAT PERSETUJUAN PENGELUARAN BARANG.*?\n\s*Nomor\s*:\s*([^\n]+?)\s*Tanggal\s*:\s*([0-9\-]+)`)
	pendaftaranPIBRe = regexp.MustCompile(`Nomor Pendaftaran PIB\s*:\s*([0-9]+)\s*Tanggal\s*:\s*([0-9\-]+)`)
	nomorAjuRe       = regexp.MustCompile(`(?i)Nomor aju\s*:\s*([0-9]+)`)

	kepadaImportirRe = regexp.MustCompile(`(?is)Kepada\s*:\s*.*?Importir`)
	lokasiCutRe      = regexp.MustCompile(`\n\s*Lokasi Barang\s*:`)

	npwpDigitsRe = regexp.MustCompile(`\bNPWP\s*:\s*([0-9\-]+)`)
	nitkuRe      = regexp.MustCompile(`\bNITKU\s*:\s*([0-9]+)`)
	namaLineRe   = regexp.MustCompile(`\bNama\s*:\s*(.*)`)
	alamatLineRe = regexp.MustCompile(`\bAlamat\s*:\s*(.*)`)

	npwpAnyRe = regexp.MustCompile(`\bNPWP\s*:\s*(.*)`)
	npPpjkRe  = regexp.MustCompile(`\bNP\s*PPJK\s*:\s*(.*)`)

	lokasiBarangRe = regexp.MustCompile(`Lokasi Barang\s*:\s*(.*)`)
	awbHostRe      = regexp.MustCompile(`(?i)No\.?\s*B/?L atau AWB\s*\(Host\)\s*:\s*([^\s]+)\s*Tanggal\s*:\s*([0-9\-]+)`)
	saranaNamaRe   = regexp.MustCompile(`Nama Sarana Pengangkut\s*:\s*(.*)`)
	voyFlightRe    = regexp.MustCompile(`(?i)No\.?\s*Voy\.?/Flight\s*:\s*([A-Z0-9]+)`)

	bc11Re       = regexp.MustCompile(`(?i)No\.?\s*BC\s*1\.1\s*:\s*([0-9]+)\s*Tanggal\s*:\s*([0-9\-]+)`)
	bc11InlineRe = regexp.MustCompile(`(?i)No\.?\s*BC\s*1\.1\s*:\s*([0-9]+)\s*Tanggal\s*:\s*([0-9\-]+)\s*Pos\s*:\s*([^\n]*)`)
	posDigitsRe  = regexp.MustCompile(`\b\d{10,15}\b`)

	kemasanRe      = regexp.MustCompile(`(?i)Jumlah/jenis kemasan\s*:\s*([^\n]+)`)
	kemasanLabelRe = regexp.MustCompile(`(?i)Jumlah/jenis kemasan`)
	beratSplitRe   = regexp.MustCompile(`\s+Berat\s*:\s*`)
	merkKemasanRe  = regexp.MustCompile(`(?i)Merk kemasan\s*:\s*(.*)`)
	jumlahPKRe     = regexp.MustCompile(`(?i)Jumlah peti kemas\s*:\s*([0-9]+)`)
	nomorPKRe      = regexp.MustCompile(`(?i)Nomor Peti Kemas/Ukuran\s*:\s*(.*)`)
	beratRe        = regexp.MustCompile(`(?i)\bBerat\s*:\s*([0-9][0-9\.,]*)`)
	beratDesimalRe = regexp.MustCompile(`\b\d+\.\d{4}\b`)
)

// ExtractSPPB reads a goods-release approval out of per-page text. Unlike a
// PIB there is no mandatory field; a document that matches nothing yields an
// empty result, never an error.
func ExtractSPPB(pages []string, v Variant) *SPPBData {
	var sb strings.Builder
	var lines []string
	for _, t := range pages {
		sb.WriteString("\n")
		sb.WriteString(t)
		if t == "" {
			continue
		}
		for _, ln := range strings.Split(strings.TrimSuffix(t, "\n"), "\n") {
			lines = append(lines, strings.TrimRight(ln, " \t\r\n"))
		}
	}
	allText := sb.String()

	d := &SPPBData{}

	if m := sppbHeaderRe.FindStringSubmatch(allText); m != nil {
		d.Sppb = &NomorTanggal{Nomor: clean(m[1]), Tanggal: clean(m[2])}
	}
	if m := pendaftaranPIBRe.FindStringSubmatch(allText); m != nil {
		d.PendaftaranPIB = &NomorTanggal{Nomor: clean(m[1]), Tanggal: clean(m[2])}
	}
	if m := nomorAjuRe.FindStringSubmatch(allText); m != nil {
		d.NomorAju = clean(m[1])
	}

	// Importer block: everything between the "Kepada : ... Importir" header
	// and the "Lokasi Barang :" label (or end of document).
	if loc := kepadaImportirRe.FindStringIndex(allText); loc != nil {
		block := allText[loc[1]:]
		if cut := lokasiCutRe.FindStringIndex(block); cut != nil {
			block = block[:cut[0]]
		}
		if m := npwpDigitsRe.FindStringSubmatch(block); m != nil {
			d.Importir.NPWP = clean(m[1])
		}
		if m := nitkuRe.FindStringSubmatch(block); m != nil {
			d.Importir.NITKU = clean(m[1])
		}
		if m := namaLineRe.FindStringSubmatch(block); m != nil {
			d.Importir.Nama = clean(m[1])
		}
		if m := alamatLineRe.FindStringSubmatch(block); m != nil {
			d.Importir.Alamat = clean(m[1])
		}
	}

	// Broker block: the second "NPWP :" in the document belongs to the PPJK.
	if matches := npwpAnyRe.FindAllStringSubmatchIndex(allText, -1); len(matches) >= 2 {
		loc := matches[1]
		d.Ppjk.NPWP = clean(allText[loc[2]:loc[3]])
		tail := allText[loc[1]:]
		if m := namaLineRe.FindStringSubmatch(tail); m != nil {
			d.Ppjk.Nama = clean(m[1])
		}
		if m := alamatLineRe.FindStringSubmatch(tail); m != nil {
			d.Ppjk.Alamat = clean(m[1])
		}
		if m := npPpjkRe.FindStringSubmatch(tail); m != nil {
			d.Ppjk.NpPpjk = clean(m[1])
		}
	}

	if m := lokasiBarangRe.FindStringSubmatch(allText); m != nil {
		d.LokasiBarang = clean(m[1])
	}
	if m := awbHostRe.FindStringSubmatch(allText); m != nil {
		d.Awb = &NomorTanggal{Nomor: clean(m[1]), Tanggal: clean(m[2])}
	}

	if m := saranaNamaRe.FindStringSubmatch(allText); m != nil {
		d.Sarana.Nama = clean(m[1])
	}
	if m := voyFlightRe.FindStringSubmatch(allText); m != nil {
		d.Sarana.VoyFlight = clean(m[1])
	}

	d.BC11 = extractBC11(allText, v)

	d.Kemasan = extractKemasan(allText, lines)

	return d
}

// extractBC11 reads the BC 1.1 reference. The production rule hunts the pos
// number in a window around the match; the legacy rule expects it inline
// after a "Pos :" label.
func extractBC11(allText string, v Variant) *BC11 {
	if v == VariantLegacy {
		m := bc11InlineRe.FindStringSubmatch(allText)
		if m == nil {
			return nil
		}
		return &BC11{Nomor: clean(m[1]), Tanggal: clean(m[2]), Pos: clean(m[3])}
	}

	loc := bc11Re.FindStringSubmatchIndex(allText)
	if loc == nil {
		return nil
	}
	nomor := strings.TrimSpace(allText[loc[2]:loc[3]])
	tanggal := strings.TrimSpace(allText[loc[4]:loc[5]])

	lo := loc[0] - 100
	if lo < 0 {
		lo = 0
	}
	hi := loc[1] + 100
	if hi > len(allText) {
		hi = len(allText)
	}
	window := allText[lo:loc[0]] + "\n" + allText[loc[1]:hi]

	var pos *string
	if p := posDigitsRe.FindString(window); p != "" {
		pos = &p
	}
	return &BC11{Nomor: &nomor, Tanggal: &tanggal, Pos: pos}
}

func extractKemasan(allText string, lines []string) Kemasan {
	var k Kemasan

	// The packaging count often shares its line with the "Berat :" label.
	if m := kemasanRe.FindStringSubmatch(allText); m != nil {
		raw := beratSplitRe.Split(m[1], -1)[0]
		k.JumlahJenis = clean(raw)
	}
	if m := merkKemasanRe.FindStringSubmatch(allText); m != nil {
		k.Merk = clean(m[1])
	}
	if m := jumlahPKRe.FindStringSubmatch(allText); m != nil {
		k.JumlahPetiKemas = clean(m[1])
	}
	if m := nomorPKRe.FindStringSubmatch(allText); m != nil {
		k.NomorPetiKemasUkuran = clean(m[1])
	}

	if m := beratRe.FindStringSubmatch(allText); m != nil {
		k.Berat = clean(m[1])
		return k
	}

	// No number followed the label; look for a 4-decimal figure in the lines
	// surrounding the packaging row.
	idx := -1
	for i, ln := range lines {
		if kemasanLabelRe.MatchString(ln) {
			idx = i
			break
		}
	}
	if idx >= 0 {
		lo := idx - 2
		if lo < 0 {
			lo = 0
		}
		hi := idx + 4
		if hi > len(lines) {
			hi = len(lines)
		}
		for j := lo; j < hi; j++ {
			if b := beratDesimalRe.FindString(lines[j]); b != "" {
				k.Berat = clean(b)
				break
			}
		}
	}
	return k
}
