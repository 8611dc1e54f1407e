package dto

import "time"

// ArchiveExportRequest asks for an export to be stored behind a signed link.
type ArchiveExportRequest struct {
	Kind   string `json:"kind" validate:"required,oneof=students attendance analytics"`
	Format string `json:"format" validate:"omitempty,oneof=csv json pdf"`
	Batch  string `json:"batch"`
	Search string `json:"search"`
	Band   string `json:"band"`
}

// ArchivedExport describes a stored export.
type ArchivedExport struct {
	FileName  string    `json:"file_name"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
	Size      int       `json:"size"`
}
