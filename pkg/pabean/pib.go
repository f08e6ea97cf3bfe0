package pabean

import (
	"regexp"
	"strings"
)

var (
	pengajuanRe        = regexp.MustCompile(`Nomor Pengajuan\s*:([0-9]+)\s*Tanggal Pengajuan\s*:([0-9-]+)`)
	kantorPabeanRe     = regexp.MustCompile(`Kantor Pabean\s*:([A-Z0-9\s\-\.\(\)]+)`)
	identitasRe        = regexp.MustCompile(`2\. Identitas\s*:\s*([0-9 /]+)`)
	namaAlamatRe       = regexp.MustCompile(`(?s)3\. Nama, Alamat\s*:(.*?)\n`)
	nibRe              = regexp.MustCompile(`5\. NIB\s*:\s*([0-9]+)`)
	invoiceRe          = regexp.MustCompile(`15\. Invoice\s*: No\. ([0-9]+)\s*Tgl\.([0-9-]+)`)
	perkiraanTibaRe    = regexp.MustCompile(`11\. Perkiraan Tanggal Tiba\s*:([0-9-]+)`)
	pelMuatRe          = regexp.MustCompile(`12\. Pelabuhan Muat\s*:(.*?)\n`)
	pelTransitRe       = regexp.MustCompile(`13\. Pelabuhan Transit\s*:(.*?)\n`)
	pelTujuanRe        = regexp.MustCompile(`14\. Pelabuhan Tujuan\s*:(.*?)\n`)
	pendaftaranRe      = regexp.MustCompile(`Nomor\s*:\s*([0-9]+)\s*Tanggal\s*:\s*([0-9-]+)`)
	pendaftaranLabelRe = regexp.MustCompile(`Nomor dan Tanggal Pendaftaran\s*([0-9]+)\s*([0-9-]+)`)

	houseBlRe  = regexp.MustCompile(`(?i)House[-\s]?BL/AWB\s*:?\s*([A-Z0-9/.-]+)`)
	masterBlRe = regexp.MustCompile(`(?i)Master[-\s]?BL/AWB\s*:?\s*([A-Z0-9/.-]+)`)
)

// JoinPages concatenates per-page text the way the pipeline expects:
// each non-empty page prefixed by a newline. Extraction regexes rely on
// this page boundary existing.
func JoinPages(pages []string) string {
	var sb strings.Builder
	for _, t := range pages {
		if t == "" {
			continue
		}
		sb.WriteString("\n")
		sb.WriteString(t)
	}
	return sb.String()
}

// ExtractPIB reads an import declaration out of per-page text. It returns
// ErrNoBarang when no goods line item can be recovered; every other field
// is best-effort and may stay nil.
func ExtractPIB(pages []string, v Variant) (*PIBData, error) {
	allText := JoinPages(pages)
	d := &PIBData{}

	if m := pengajuanRe.FindStringSubmatch(allText); m != nil {
		d.NomorPengajuan = ptr(strings.TrimSpace(m[1]))
		d.TanggalPengajuan = ptr(strings.TrimSpace(m[2]))
	}
	if m := kantorPabeanRe.FindStringSubmatch(allText); m != nil {
		d.KantorPabean = ptr(strings.TrimSpace(m[1]))
	}

	if m := identitasRe.FindStringSubmatch(allText); m != nil {
		d.Importir.Identitas = ptr(strings.TrimSpace(m[1]))
	}
	if m := nibRe.FindStringSubmatch(allText); m != nil {
		d.Importir.NIB = ptr(strings.TrimSpace(m[1]))
	}
	if m := namaAlamatRe.FindStringSubmatch(allText); m != nil {
		parts := strings.SplitN(strings.TrimSpace(m[1]), "\n", 2)
		d.Importir.Nama = ptr(strings.TrimSpace(parts[0]))
		if len(parts) == 2 {
			d.Importir.Alamat = ptr(strings.TrimSpace(parts[1]))
		}
	}

	if m := invoiceRe.FindStringSubmatch(allText); m != nil {
		d.InvoiceNo = ptr(strings.TrimSpace(m[1]))
		d.InvoiceDate = ptr(strings.TrimSpace(m[2]))
	}
	if m := perkiraanTibaRe.FindStringSubmatch(allText); m != nil {
		d.PerkiraanTiba = ptr(strings.TrimSpace(m[1]))
	}

	d.Pelabuhan = Pelabuhan{
		Muat:    pelabuhanField(pelMuatRe, allText, v),
		Transit: pelabuhanField(pelTransitRe, allText, v),
		Tujuan:  pelabuhanField(pelTujuanRe, allText, v),
	}

	d.Sarana = ExtractSarana(allText)

	if m := pendaftaranRe.FindStringSubmatch(allText); m != nil {
		d.Pendaftaran = &NomorTanggal{Nomor: ptr(strings.TrimSpace(m[1])), Tanggal: ptr(strings.TrimSpace(m[2]))}
	} else if m := pendaftaranLabelRe.FindStringSubmatch(allText); m != nil {
		d.Pendaftaran = &NomorTanggal{Nomor: ptr(strings.TrimSpace(m[1])), Tanggal: ptr(strings.TrimSpace(m[2]))}
	}

	d.BlAwb = extractBlAwb(allText)

	d.Barang = extractBarang(allText, v)
	if len(d.Barang) == 0 {
		return nil, ErrNoBarang
	}
	return d, nil
}

// pelabuhanField reads a port field. The production shape keeps only the
// last whitespace token ("TANJUNG PRIOK IDTPP" becomes "IDTPP"); the legacy
// shape keeps the raw value.
func pelabuhanField(re *regexp.Regexp, allText string, v Variant) *string {
	m := re.FindStringSubmatch(allText)
	if m == nil {
		return nil
	}
	teks := strings.TrimSpace(m[1])
	if v == VariantLegacy {
		return &teks
	}
	parts := strings.Fields(teks)
	if len(parts) == 0 {
		return ptr("")
	}
	return ptr(parts[len(parts)-1])
}

// extractBlAwb finds the house and master BL/AWB numbers. Captured values
// carry a 3-character carrier prefix that downstream systems do not want,
// so it is cut off.
func extractBlAwb(allText string) BlAwb {
	var r BlAwb
	if m := houseBlRe.FindStringSubmatch(allText); m != nil {
		r.HouseBlAwb = ptr(stripPrefix3(strings.TrimSpace(m[1])))
	}
	if m := masterBlRe.FindStringSubmatch(allText); m != nil {
		r.MasterBlAwb = ptr(stripPrefix3(strings.TrimSpace(m[1])))
	}
	return r
}

func stripPrefix3(s string) string {
	if len(s) <= 3 {
		return ""
	}
	return s[3:]
}
