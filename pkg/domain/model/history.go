package model

import "time"

// DownloadRecord is one row of the local download history database
type DownloadRecord struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// What was requested
	ProductURL string `gorm:"not null;index" json:"product_url"`
	AssetName  string `gorm:"not null" json:"asset_name"`
	Arch       string `json:"arch"`
	Extension  string `json:"extension"`
	Family     string `json:"family"`
	SourceURL  string `gorm:"not null" json:"source_url"`

	// Outcome
	DestPath    string `json:"dest_path"`
	Size        int64  `json:"size"`
	Succeeded   bool   `gorm:"not null;default:false" json:"succeeded"`
	FailureKind string `json:"failure_kind,omitempty"`
	Error       string `json:"error,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

// TableName overrides the table name for GORM
func (DownloadRecord) TableName() string {
	return "downloads"
}
