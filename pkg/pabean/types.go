package pabean

// Variant selects which historical output shape and cleanup rules apply.
// The extraction pipeline is shared; the variant only changes numeric
// formatting, the unit-code rule, the port reduction and the BC 1.1 rule.
type Variant int

const (
	// VariantUtama is the behavior served by the production endpoint.
	VariantUtama Variant = iota
	// VariantLegacy preserves the older numeric-typed pipeline.
	VariantLegacy
)

// PIBData is the extraction result for an Import Declaration (PIB).
type PIBData struct {
	NomorPengajuan   *string            `json:"nomor_pengajuan"`
	TanggalPengajuan *string            `json:"tanggal_pengajuan"`
	KantorPabean     *string            `json:"kantor_pabean"`
	Importir         Importir           `json:"importir"`
	InvoiceNo        *string            `json:"invoice_no"`
	InvoiceDate      *string            `json:"invoice_date"`
	PerkiraanTiba    *string            `json:"perkiraan_tiba"`
	Pelabuhan        Pelabuhan          `json:"pelabuhan"`
	Sarana           SaranaPengangkutan `json:"sarana_pengangkutan"`
	Pendaftaran      *NomorTanggal      `json:"pendaftaran,omitempty"`
	BlAwb            BlAwb              `json:"bl_awb"`
	Barang           []Barang           `json:"barang"`
}

// Importir is the importer identity block of a PIB.
type Importir struct {
	Identitas *string `json:"identitas"`
	Nama      *string `json:"nama"`
	Alamat    *string `json:"alamat"`
	NIB       *string `json:"nib"`
}

// Pelabuhan holds the load/transit/destination port fields.
type Pelabuhan struct {
	Muat    *string `json:"muat"`
	Transit *string `json:"transit"`
	Tujuan  *string `json:"tujuan"`
}

// SaranaPengangkutan is the carrier block of a PIB. Every field is
// best-effort; any subset may be nil without that being an error.
type SaranaPengangkutan struct {
	KodeBendera  *string `json:"kode_bendera"`  // e.g. US, ID, PA
	Negara       *string `json:"negara"`        // e.g. GERMANY, JAPAN, TAIWAN
	Nama         *string `json:"nama"`          // e.g. FEDERAL EXPRESS CORPORATION
	VoyageFlight *string `json:"voyage_flight"` // e.g. FX5194, 2Y6011, 1147-082A
	Bendera      *string `json:"bendera"`       // e.g. UNITED STATES, INDONESIA
}

// NomorTanggal is a generic number/date pair.
type NomorTanggal struct {
	Nomor   *string `json:"nomor"`
	Tanggal *string `json:"tanggal"`
}

// BlAwb holds the house and master bill-of-lading / airway-bill numbers.
type BlAwb struct {
	HouseBlAwb  *string `json:"house_bl_awb"`
	MasterBlAwb *string `json:"master_bl_awb"`
}

// Barang is one goods line item of a PIB.
type Barang struct {
	Uraian       string  `json:"uraian"`
	Kondisi      string  `json:"kondisi"`
	Negara       string  `json:"negara"`
	HsCode       string  `json:"hs_code"`
	JumlahSatuan *string `json:"jumlah_satuan,omitempty"`
	Qty          string  `json:"qty"`
	KodeSatuan   *string `json:"kode_satuan"`
	NilaiPabean  string  `json:"nilai_pabean"`
}

// QtyValue exposes the quantity as a number, the shape the legacy pipeline
// reported. Under VariantLegacy the string is guaranteed parseable.
func (b Barang) QtyValue() (float64, error) {
	return parseAngka(b.Qty)
}

// NilaiPabeanValue exposes the customs value as a number, matching the legacy
// pipeline shape.
func (b Barang) NilaiPabeanValue() (float64, error) {
	return parseAngka(b.NilaiPabean)
}

// SPPBData is the extraction result for a Goods Release Approval (SPPB).
type SPPBData struct {
	Sppb           *NomorTanggal `json:"sppb,omitempty"`
	PendaftaranPIB *NomorTanggal `json:"pendaftaran_pib,omitempty"`
	NomorAju       *string       `json:"nomor_aju,omitempty"`
	Importir       ImportirSPPB  `json:"importir"`
	Ppjk           Ppjk          `json:"ppjk"`
	LokasiBarang   *string       `json:"lokasi_barang,omitempty"`
	Awb            *NomorTanggal `json:"awb,omitempty"`
	Sarana         SaranaSPPB    `json:"sarana_pengangkut"`
	BC11           *BC11         `json:"bc11,omitempty"`
	Kemasan        Kemasan       `json:"kemasan"`
}

// ImportirSPPB is the importer block of an SPPB.
type ImportirSPPB struct {
	NPWP   *string `json:"npwp"`
	NITKU  *string `json:"nitku"`
	Nama   *string `json:"nama"`
	Alamat *string `json:"alamat"`
}

// Ppjk is the customs-broker block of an SPPB. All fields stay nil when the
// document carries fewer than two NPWP labels.
type Ppjk struct {
	NPWP   *string `json:"npwp"`
	Nama   *string `json:"nama"`
	Alamat *string `json:"alamat"`
	NpPpjk *string `json:"np_ppjk"`
}

// SaranaSPPB is the carrier reference of an SPPB.
type SaranaSPPB struct {
	Nama      *string `json:"nama"`
	VoyFlight *string `json:"voy_flight"`
}

// BC11 is the BC 1.1 declaration reference of an SPPB.
type BC11 struct {
	Nomor   *string `json:"nomor"`
	Tanggal *string `json:"tanggal"`
	Pos     *string `json:"pos"`
}

// Kemasan holds the packaging, weight and container fields of an SPPB.
type Kemasan struct {
	JumlahJenis          *string `json:"jumlah_jenis"`
	Merk                 *string `json:"merk"`
	JumlahPetiKemas      *string `json:"jumlah_peti_kemas"`
	NomorPetiKemasUkuran *string `json:"nomor_peti_kemas_ukuran"`
	Berat                *string `json:"berat"`
}
