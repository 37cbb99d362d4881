package dto

import (
	"encoding/json"
	"time"

	"mindlift/internal/entity"
)

type AdminStatsResponse struct {
	TotalUsers      int64 `json:"total_users"`
	PaidUsers       int64 `json:"paid_users"`
	PendingSpeakers int64 `json:"pending_speakers"`
	TotalVideos     int64 `json:"total_videos"`
	PendingVideos   int64 `json:"pending_videos"`
	ApprovedVideos  int64 `json:"approved_videos"`
}

type CreateBookmarkRequest struct {
	VideoID string `json:"video_id" validate:"required,uuid"`
}

type BookmarkResponse struct {
	VideoID   string        `json:"video_id"`
	Video     VideoResponse `json:"video"`
	CreatedAt time.Time     `json:"created_at"`
}

type NotificationResponse struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Message   string          `json:"message,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Read      bool            `json:"read"`
	CreatedAt time.Time       `json:"created_at"`
}

func NotificationResponseFromEntity(n *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID.String(),
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Data:      json.RawMessage(n.Data),
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func NotificationResponsesFromEntities(notifications []entity.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, NotificationResponseFromEntity(&notifications[i]))
	}
	return responses
}

type SubscribeResponse struct {
	ClientSecret string `json:"client_secret"`
}
