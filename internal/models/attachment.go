package models

import "time"

// Attachment maps a row of the attachments table.
type Attachment struct {
	AttachmentID string    `json:"attachmentID"`
	EntryID      string    `json:"entryID"`
	FileURI      string    `json:"fileURI"`
	MimeType     string    `json:"mimeType"`
	SizeBytes    int64     `json:"sizeBytes"`
	Width        *int      `json:"width"`
	Height       *int      `json:"height"`
	CreatedAt    time.Time `json:"createdAt"`
}
