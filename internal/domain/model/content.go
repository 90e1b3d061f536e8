package model

import (
	"encoding/json"
	"time"
)

// GeneratedContent is the artifact a generator produces. Rows are immutable
// once persisted; repeated submissions create new rows.
type GeneratedContent struct {
	ID           string
	UserID       string
	JobID        string
	BusinessName string
	Industry     string
	Params       json.RawMessage
	Payload      json.RawMessage
	Status       string
	CreatedAt    time.Time
}

// SocialPost is one generated post. Field presence depends on the platform:
// short-form platforms carry Content only, image-first platforms carry a
// caption plus an image idea, Pinterest carries Title and Description.
type SocialPost struct {
	Content     string     `json:"content,omitempty"`
	Title       string     `json:"title,omitempty"`
	Caption     string     `json:"caption,omitempty"`
	ImageIdea   string     `json:"imageIdea,omitempty"`
	Description string     `json:"description,omitempty"`
	Hashtags    []string   `json:"hashtags,omitempty"`
	PostAt      *time.Time `json:"postAt,omitempty"`
	Enriched    bool       `json:"enriched,omitempty"`
}

// PlatformPosts groups the posts generated for a single platform.
type PlatformPosts struct {
	Platform string       `json:"platform"`
	Posts    []SocialPost `json:"posts"`
}
