package pabean

import "errors"

// ErrNoBarang is returned by ExtractPIB when neither goods-table layout
// yields a single line item. A PIB without goods is unusable downstream,
// so callers treat this as a hard failure rather than an empty result.
var ErrNoBarang = errors.New("pabean: tidak ada barang terdeteksi pada dokumen PIB")
