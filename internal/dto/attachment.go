package dto

import (
	"time"

	"github.com/khatapp/khata_backend/internal/core/domain"
)

// NewAttachment describes one file to link to an entry.
type NewAttachment struct {
	FileURI   string `json:"fileURI" binding:"required"`
	MimeType  string `json:"mimeType" binding:"required"`
	SizeBytes int64  `json:"sizeBytes" binding:"required,min=1"`
	Width     *int   `json:"width,omitempty"`
	Height    *int   `json:"height,omitempty"`
}

// AddAttachmentsRequest links a batch of files to an entry.
type AddAttachmentsRequest struct {
	Files []NewAttachment `json:"files" binding:"required,min=1,dive"`
}

// DeleteAttachmentsRequest removes a batch of attachments.
type DeleteAttachmentsRequest struct {
	AttachmentIDs []string `json:"attachmentIDs" binding:"required,min=1"`
}

// AttachmentResponse is the API representation of an attachment.
type AttachmentResponse struct {
	AttachmentID string    `json:"attachmentID"`
	EntryID      string    `json:"entryID"`
	FileURI      string    `json:"fileURI"`
	MimeType     string    `json:"mimeType"`
	SizeBytes    int64     `json:"sizeBytes"`
	Width        *int      `json:"width,omitempty"`
	Height       *int      `json:"height,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToAttachmentResponse converts a domain Attachment to its API representation.
func ToAttachmentResponse(a domain.Attachment) AttachmentResponse {
	return AttachmentResponse{
		AttachmentID: a.AttachmentID,
		EntryID:      a.EntryID,
		FileURI:      a.FileURI,
		MimeType:     a.MimeType,
		SizeBytes:    a.SizeBytes,
		Width:        a.Width,
		Height:       a.Height,
		CreatedAt:    a.CreatedAt,
	}
}

// ToAttachmentResponseSlice converts a slice of domain attachments.
func ToAttachmentResponseSlice(attachments []domain.Attachment) []AttachmentResponse {
	resp := make([]AttachmentResponse, 0, len(attachments))
	for _, a := range attachments {
		resp = append(resp, ToAttachmentResponse(a))
	}
	return resp
}
