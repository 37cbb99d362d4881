package dto

import (
	"time"

	"mindlift/internal/entity"
)

type CreateVideoRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"omitempty"`
	Category    string `json:"category" validate:"omitempty"`
	VideoURL    string `json:"video_url" validate:"omitempty,url"`
}

type UpdateVideoRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

type VideoApprovalRequest struct {
	Approved   *bool  `json:"approved" validate:"required"`
	Reason     string `json:"reason" validate:"omitempty"`
	AdminNotes string `json:"admin_notes" validate:"omitempty"`
}

type VideoResponse struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	VideoURL    string     `json:"video_url,omitempty"`
	Status      string     `json:"status"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// VideoResponseFromEntity maps a video for the wire. playbackURL is the
// resolved content location (presigned for uploaded files, the external
// URL otherwise).
func VideoResponseFromEntity(video *entity.Video, playbackURL string) VideoResponse {
	return VideoResponse{
		ID:          video.ID.String(),
		OwnerID:     video.OwnerID.String(),
		Title:       video.Title,
		Description: video.Description,
		Category:    video.Category,
		VideoURL:    playbackURL,
		Status:      string(video.Status),
		ApprovedAt:  video.ApprovedAt,
		CreatedAt:   video.CreatedAt,
	}
}
