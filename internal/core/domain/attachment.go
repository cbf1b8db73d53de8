package domain

import "time"

// Attachment is a file linked to an AccountEntry. It is owned exclusively by
// its entry and is removed when the entry is deleted.
type Attachment struct {
	AttachmentID string    `json:"attachmentID"` // Primary Key (UUID)
	EntryID      string    `json:"entryID"`      // Required FK, cascade delete
	FileURI      string    `json:"fileURI"`
	MimeType     string    `json:"mimeType"`
	SizeBytes    int64     `json:"sizeBytes"`
	Width        *int      `json:"width,omitempty"`  // Media only
	Height       *int      `json:"height,omitempty"` // Media only
	CreatedAt    time.Time `json:"createdAt"`
}
