package dto

import (
	"time"

	"mindlift/internal/entity"
)

type UpdateSpeakerProfileRequest struct {
	FullName          *string           `json:"full_name" validate:"omitempty,min=1"`
	Bio               *string           `json:"bio"`
	AreasOfExpertise  *[]string         `json:"areas_of_expertise"`
	ProfilePictureURL *string           `json:"profile_picture_url" validate:"omitempty,url"`
	IntroVideoURL     *string           `json:"intro_video_url" validate:"omitempty,url"`
	Socials           map[string]string `json:"socials"`
}

type SpeakerRejectRequest struct {
	Reason     string `json:"reason" validate:"required"`
	AdminNotes string `json:"admin_notes" validate:"omitempty"`
}

type SpeakerApproveRequest struct {
	AdminNotes string `json:"admin_notes" validate:"omitempty"`
}

type SpeakerResponse struct {
	ID                string         `json:"id"`
	UserID            string         `json:"user_id"`
	FullName          string         `json:"full_name,omitempty"`
	Bio               string         `json:"bio,omitempty"`
	AreasOfExpertise  []string       `json:"areas_of_expertise,omitempty"`
	ProfilePictureURL string         `json:"profile_picture_url,omitempty"`
	IntroVideoURL     string         `json:"intro_video_url,omitempty"`
	Socials           map[string]any `json:"socials,omitempty"`
	ApprovalStatus    string         `json:"approval_status"`
	AdminNotes        string         `json:"admin_notes,omitempty"`
	ApprovedAt        *time.Time     `json:"approved_at,omitempty"`
	RejectedAt        *time.Time     `json:"rejected_at,omitempty"`
	CompletionPercent int            `json:"completion_percent"`
	CreatedAt         time.Time      `json:"created_at"`
}

func SpeakerResponseFromEntity(speaker *entity.Speaker, completionPercent int) SpeakerResponse {
	return SpeakerResponse{
		ID:                speaker.ID.String(),
		UserID:            speaker.UserID.String(),
		FullName:          speaker.FullName,
		Bio:               speaker.Bio,
		AreasOfExpertise:  []string(speaker.AreasOfExpertise),
		ProfilePictureURL: speaker.ProfilePictureURL,
		IntroVideoURL:     speaker.IntroVideoURL,
		Socials:           speaker.Socials,
		ApprovalStatus:    string(speaker.ApprovalStatus),
		AdminNotes:        speaker.AdminNotes,
		ApprovedAt:        speaker.ApprovedAt,
		RejectedAt:        speaker.RejectedAt,
		CompletionPercent: completionPercent,
		CreatedAt:         speaker.CreatedAt,
	}
}

type SpeakerStats struct {
	TotalVideos    int64 `json:"total_videos"`
	ApprovedVideos int64 `json:"approved_videos"`
	PendingVideos  int64 `json:"pending_videos"`
}

type SpeakerDashboardResponse struct {
	Profile      SpeakerResponse `json:"profile"`
	Stats        SpeakerStats    `json:"stats"`
	RecentVideos []VideoResponse `json:"recent_videos"`
}
