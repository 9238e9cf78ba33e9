package model

import (
	"time"

	"gorm.io/datatypes"
)

// AnalysisCacheEntry is a durably cached scan analysis, keyed by the hex
// content fingerprint of the raw image. Rows are written once and never
// updated.
type AnalysisCacheEntry struct {
	Fingerprint  string         `gorm:"type:varchar(64);primaryKey"`
	Stage        string         `gorm:"type:varchar(20);not null"`
	Observations datatypes.JSON `gorm:"type:jsonb"`
	Confidence   float64        `gorm:"not null"`
	RawResponse  string         `gorm:"type:text"`
	Markdown     string         `gorm:"type:text"`
	CreatedAt    time.Time      `gorm:"default:now();not null"`
}

func (AnalysisCacheEntry) TableName() string {
	return "analysis_cache_entries"
}
