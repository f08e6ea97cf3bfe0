package models

import (
	"time"
)

// Dokumen represents one uploaded customs document (PIB or SPPB) together
// with its extraction result.
type Dokumen struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint   `gorm:"index;not null"`
	KodeTps   string `gorm:"size:32;not null;index"`
	Jenis     string `gorm:"size:8;not null;index"` // pib | sppb
	FileName  string `gorm:"size:255;not null"`
	StorePath string `gorm:"column:store_path;size:512"` // relative path under the upload base
	Hasil     []byte `gorm:"type:jsonb"` // extraction result as raw JSON
	// Mark extraction as failed (keep the record so admins can review)
	Failed       bool   `gorm:"default:false;index"`
	FailedReason string `gorm:"size:255"`
}
