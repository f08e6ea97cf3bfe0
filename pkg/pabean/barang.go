package pabean

import (
	"regexp"
	"strings"
)

// Goods lines come in two table layouts. The older one prefixes each item
// with the HS code followed by "Kode Brg"; the newer one labels it
// "Pos Tarif :". The older layout is tried first and the newer one only
// when it produced nothing, since mixed documents repeat fragments of both.

var (
	barangLamaRe = regexp.MustCompile(`(?s)(\d{4,8})\s+Kode Brg.*?BYR\s+([\d\.,-]+)\s*-\s*([\d\.,-]+).*?Uraian\s*:(.*?)Kondisi Brg\s*:\s*([A-Z]+).*?Negara\s*:\s*([A-Z\s\(\)]+)`)
	barangBaruRe = regexp.MustCompile(`(?s)Pos Tarif\s*:\s*(\d{4,8}).*?BYR\s+([\d\.,-]+)\s*-\s*([\d\.,-]+)(.*?)Kondisi Brg\s*:\s*([A-Z]+).*?Negara\s*:\s*([A-Z\s\(\)]+)`)

	beratBersihRe = regexp.MustCompile(`Berat Bersih\s*\(Kg\)\s*([\d\.,]+)`)
	metricTonRe   = regexp.MustCompile(`(?i)\bMETRIC\s+TON\b`)
	satuanKodeRe  = regexp.MustCompile(`\(([A-Z0-9\-]+)\)`)
	satuanKataRe  = regexp.MustCompile(`([A-Z ]+)\s*\(([A-Z0-9\- ]+)\)`)
)

// extractBarang scans the joined text for goods line items.
func extractBarang(allText string, v Variant) []Barang {
	items := matchBarang(allText, barangLamaRe, v)
	if len(items) == 0 {
		items = matchBarang(allText, barangBaruRe, v)
	}
	return items
}

func matchBarang(allText string, re *regexp.Regexp, v Variant) []Barang {
	var items []Barang
	for _, loc := range re.FindAllStringSubmatchIndex(allText, -1) {
		g := func(i int) string { return allText[loc[2*i]:loc[2*i+1]] }

		b := Barang{
			HsCode:  strings.TrimSpace(g(1)),
			Uraian:  collapseSpaces(g(4)),
			Kondisi: strings.TrimSpace(g(5)),
			Negara:  strings.TrimSpace(g(6)),
		}
		b.NilaiPabean = strings.NewReplacer(",", "", "-", "").Replace(g(3))

		// Context window after the match, for the unit code.
		end := loc[1]
		ctxEnd := end + 200
		if ctxEnd > len(allText) {
			ctxEnd = len(allText)
		}
		context := allText[end:ctxEnd]

		switch v {
		case VariantLegacy:
			b.Qty = strings.NewReplacer(",", "", "-", "").Replace(strings.TrimSpace(g(2)))
			b.KodeSatuan = kodeSatuanLegacy(b.Uraian, context)
		default:
			js := strings.TrimSpace(g(2))
			js = strings.ReplaceAll(js, ",", "")
			js = strings.ReplaceAll(js, ".", ",")
			js = strings.ReplaceAll(js, "-", "")
			b.JumlahSatuan = ptr(js)
			if m := beratBersihRe.FindStringSubmatch(allText); m != nil {
				b.Qty = strings.ReplaceAll(m[1], ",", "")
			} else {
				b.Qty = js
			}
			b.KodeSatuan = kodeSatuan(b.Uraian, context)
		}

		items = append(items, b)
	}
	return items
}

// kodeSatuan resolves the unit code: METRIC TON anywhere in the description
// or trailing context forces TNE, otherwise the first parenthesized code wins.
func kodeSatuan(uraian, context string) *string {
	if metricTonRe.MatchString(uraian) || metricTonRe.MatchString(context) {
		return ptr("TNE")
	}
	m := satuanKodeRe.FindStringSubmatch(uraian)
	if m == nil {
		m = satuanKodeRe.FindStringSubmatch(context)
	}
	if m == nil {
		return nil
	}
	return ptr(strings.TrimSpace(m[1]))
}

// kodeSatuanLegacy keeps the older behavior: the words preceding the
// parenthesized code, e.g. "METRIC TON" out of "METRIC TON (TNE)".
func kodeSatuanLegacy(uraian, context string) *string {
	m := satuanKataRe.FindStringSubmatch(uraian + " " + context)
	if m == nil {
		return nil
	}
	return ptr(strings.TrimSpace(m[1]))
}
