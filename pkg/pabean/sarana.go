package pabean

import (
	"regexp"
	"strings"
)

// The carrier block ("10. Nama Sarana Pengangkutan & No. Voy/Flight dan
// Bendera") is the noisiest region of a PIB. Layout after PDF text
// extraction is unstable: fields may sit on their own lines, collapse onto
// one line, or interleave with seller noise. Extraction runs an ordered
// chain of strategies; the first one that recovers a voyage/flight wins,
// and the remaining fields are filled conservatively.

var (
	saranaLabelRe = regexp.MustCompile(`(?i)^10\.\s*Nama Sarana Pengangkutan\s*&\s*No\.\s*Voy/Flight\s*dan\s*Bendera\s*:?`)
	nextPointRe   = regexp.MustCompile(`^\d{1,2}\.\s`)

	countryCodeRe = regexp.MustCompile(`^[A-Z]{2,3}$`)
	tailCodeRe    = regexp.MustCompile(`\b([A-Z]{2,3})\b$`)
	countryLineRe = regexp.MustCompile(`^[A-Z][A-Z\s,\.()-]+$`)
	digitRe       = regexp.MustCompile(`\d`)

	flightLineRe = regexp.MustCompile(`^([A-Z0-9]{1,4}\d{2,6}(?:-[A-Z0-9]+)?)\s+([A-Z][A-Z\s,]+)$`)
	inlineRe     = regexp.MustCompile(`\b([A-Z]{2,3})\s+([A-Z][A-Z\s,]+?)\s+([A-Z0-9\s\.\-&]+?)\s+([A-Z0-9]{1,4}\d{2,6}(?:-[A-Z0-9]+)?)\s+([A-Z][A-Z\s,]+)\b`)
	inlineAltRe  = regexp.MustCompile(`\b([A-Z]{2,3})\s+([A-Z][A-Z\s,]+?)\s+([A-Z0-9\s\.\-&]+?)\s+([A-Z0-9]{1,4}\d{1,6}(?:-[A-Z0-9]+)?)\s+([A-Z][A-Z\s,]+)\b`)

	numCountryRe = regexp.MustCompile(`^(\d{1,4})\s+([A-Z][A-Z\s,]+)$`)
	numOnlyRe    = regexp.MustCompile(`^(\d{1,4})\s*$`)
	benderaRe    = regexp.MustCompile(`^[A-Z][A-Z\s,]+$`)

	airlineNumRe = regexp.MustCompile(`^([A-Z]{1,3}\d{2,6})\s+([A-Z][A-Z\s,]+)$`)
	numDashRe    = regexp.MustCompile(`^(\d{1,6}(?:-[A-Z0-9]+)?)\s+([A-Z][A-Z\s,]+)$`)
	alnumRe      = regexp.MustCompile(`^([A-Z0-9]{2,8})\s+([A-Z][A-Z\s,]+)$`)
)

// saranaStrategy is one attempt at reading the carrier block.
type saranaStrategy func(text string) SaranaPengangkutan

// saranaChain is tried in order; a later strategy only runs when the
// previous one failed to recover a voyage/flight, and its result replaces
// the earlier one wholesale.
var saranaChain = []saranaStrategy{
	extractSaranaUtama,
	extractSaranaAlternatif,
}

// ExtractSarana runs the carrier strategy chain over the joined document text.
func ExtractSarana(text string) SaranaPengangkutan {
	var out SaranaPengangkutan
	for i, strat := range saranaChain {
		r := strat(text)
		if i == 0 || r.VoyageFlight != nil {
			out = r
		}
		if out.VoyageFlight != nil {
			break
		}
	}
	return out
}

// collectSaranaBlock isolates the carrier block: the tail of the label line
// plus the following lines up to the next numbered heading, with empties and
// seller noise ("PENJUAL SG/TW/DE") removed.
func collectSaranaBlock(text string) (cleaned []string, tail string, found bool) {
	lines := strings.Split(text, "\n")
	startIdx := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "10. Nama Sarana Pengangkutan") {
			startIdx = i
			break
		}
	}
	if startIdx < 0 {
		return nil, "", false
	}

	tail = strings.TrimSpace(saranaLabelRe.ReplaceAllString(lines[startIdx], ""))

	var block []string
	if tail != "" {
		block = append(block, tail)
	}
	for j := startIdx + 1; j < len(lines); j++ {
		s := strings.TrimSpace(lines[j])
		if nextPointRe.MatchString(s) {
			break
		}
		block = append(block, s)
	}

	for _, s := range block {
		s = strings.TrimSpace(s)
		if s == "" || strings.HasPrefix(strings.ToUpper(s), "PENJUAL") {
			continue
		}
		cleaned = append(cleaned, s)
	}
	return cleaned, tail, true
}

// takeKodeBendera pulls the 2-3 letter flag code off the front of the block,
// falling back to a trailing code embedded in the label tail.
func takeKodeBendera(r *SaranaPengangkutan, cleaned []string, tail string) []string {
	if len(cleaned) > 0 && countryCodeRe.MatchString(cleaned[0]) {
		r.KodeBendera = ptr(cleaned[0])
		return cleaned[1:]
	}
	if tail != "" {
		if m := tailCodeRe.FindStringSubmatch(tail); m != nil {
			r.KodeBendera = ptr(m[1])
		}
	}
	return cleaned
}

// fillNamaNegara is the conservative last resort: after removing the flight
// line, the most common residual ordering is country then carrier name.
func fillNamaNegara(r *SaranaPengangkutan, cleaned []string, flightIdx int) {
	if r.Negara != nil && r.Nama != nil {
		return
	}
	work := make([]string, 0, len(cleaned))
	for i, s := range cleaned {
		if i == flightIdx {
			continue
		}
		work = append(work, s)
	}
	if r.Negara == nil {
		for _, s := range work {
			if countryLineRe.MatchString(s) && !digitRe.MatchString(s) {
				r.Negara = ptr(s)
				break
			}
		}
	}
	if r.Nama == nil {
		for _, s := range work {
			if digitRe.MatchString(s) || countryCodeRe.MatchString(s) {
				continue
			}
			if r.Negara != nil && s == *r.Negara {
				continue
			}
			r.Nama = ptr(s)
			break
		}
	}
}

// extractSaranaUtama handles the dominant layouts: a dedicated flight line
// ("FX5194 UNITED STATES") preceded by carrier name and country, or the
// whole block flattened onto one line.
func extractSaranaUtama(text string) SaranaPengangkutan {
	var r SaranaPengangkutan
	cleaned, tail, found := collectSaranaBlock(text)
	if !found || len(cleaned) == 0 {
		return r
	}

	cleaned = takeKodeBendera(&r, cleaned, tail)

	flightIdx := -1
	for idx, s := range cleaned {
		if m := flightLineRe.FindStringSubmatch(s); m != nil {
			r.VoyageFlight = ptr(m[1])
			r.Bendera = ptr(strings.TrimSpace(m[2]))
			flightIdx = idx
			break
		}
	}

	// Multi-line ordering is usually [NEGARA] [NAMA] [FLIGHT BENDERA].
	if flightIdx >= 0 {
		if flightIdx-1 >= 0 && r.Nama == nil {
			r.Nama = ptr(cleaned[flightIdx-1])
		}
		if flightIdx-2 >= 0 && r.Negara == nil {
			cand := cleaned[flightIdx-2]
			if countryLineRe.MatchString(cand) && !digitRe.MatchString(cand) {
				r.Negara = ptr(cand)
			}
		}
	}

	if r.VoyageFlight == nil {
		flat := strings.Join(cleaned, " ")
		if m := inlineRe.FindStringSubmatch(flat); m != nil {
			if r.KodeBendera == nil {
				r.KodeBendera = ptr(strings.TrimSpace(m[1]))
			}
			if r.Negara == nil {
				r.Negara = ptr(strings.TrimSpace(m[2]))
			}
			if r.Nama == nil {
				r.Nama = ptr(strings.TrimSpace(m[3]))
			}
			r.VoyageFlight = ptr(strings.TrimSpace(m[4]))
			r.Bendera = ptr(strings.TrimSpace(m[5]))
		}
	}

	fillNamaNegara(&r, cleaned, flightIdx)
	return r
}

// extractSaranaAlternatif covers degenerate voyage numbers that the primary
// strategy rejects: bare numerics ("3 PANAMA", a lone "3" with the flag on
// the next line) and short alphanumeric codes, while refusing quantity lines
// like "1 PACKAGE".
func extractSaranaAlternatif(text string) SaranaPengangkutan {
	var r SaranaPengangkutan
	cleaned, tail, found := collectSaranaBlock(text)
	if !found || len(cleaned) == 0 {
		return r
	}

	cleaned = takeKodeBendera(&r, cleaned, tail)

	flightIdx := -1
	for idx, s := range cleaned {
		if m := numCountryRe.FindStringSubmatch(s); m != nil {
			r.VoyageFlight = ptr(strings.TrimSpace(m[1]))
			r.Bendera = ptr(strings.TrimSpace(m[2]))
			flightIdx = idx
			break
		}
		if m := numOnlyRe.FindStringSubmatch(s); m != nil {
			r.VoyageFlight = ptr(strings.TrimSpace(m[1]))
			if idx+1 < len(cleaned) && benderaRe.MatchString(cleaned[idx+1]) {
				r.Bendera = ptr(strings.TrimSpace(cleaned[idx+1]))
			}
			flightIdx = idx
			break
		}
	}

	if r.VoyageFlight == nil {
		for idx, s := range cleaned {
			m := airlineNumRe.FindStringSubmatch(s)
			if m == nil {
				m = numDashRe.FindStringSubmatch(s)
			}
			if m == nil {
				m = alnumRe.FindStringSubmatch(s)
			}
			if m == nil {
				continue
			}
			second := strings.Fields(m[2])
			if len(second) > 0 {
				switch strings.ToUpper(second[0]) {
				case "PACKAGE", "BULK", "FCL", "KG", "PKG":
					continue
				}
			}
			r.VoyageFlight = ptr(strings.TrimSpace(m[1]))
			r.Bendera = ptr(strings.TrimSpace(m[2]))
			flightIdx = idx
			break
		}
	}

	if flightIdx >= 0 {
		if flightIdx-1 >= 0 && r.Nama == nil {
			cand := cleaned[flightIdx-1]
			if !countryCodeRe.MatchString(cand) && !digitRe.MatchString(cand) {
				r.Nama = ptr(cand)
			}
		}
		if flightIdx-2 >= 0 && r.Negara == nil {
			cand := cleaned[flightIdx-2]
			if countryLineRe.MatchString(cand) && !digitRe.MatchString(cand) {
				r.Negara = ptr(cand)
			}
		}
	}

	if r.VoyageFlight == nil {
		flat := strings.Join(cleaned, " ")
		if m := inlineAltRe.FindStringSubmatch(flat); m != nil {
			if r.KodeBendera == nil {
				r.KodeBendera = ptr(strings.TrimSpace(m[1]))
			}
			if r.Negara == nil {
				r.Negara = ptr(strings.TrimSpace(m[2]))
			}
			if r.Nama == nil {
				r.Nama = ptr(strings.TrimSpace(m[3]))
			}
			r.VoyageFlight = ptr(strings.TrimSpace(m[4]))
			r.Bendera = ptr(strings.TrimSpace(m[5]))
		}
	}

	fillNamaNegara(&r, cleaned, flightIdx)
	return r
}
