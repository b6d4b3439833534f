package models

import "time"

// User represents an account within the TubeAutomator platform.
type User struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Password       string     `json:"-"`
	FullName       string     `json:"fullName,omitempty"`
	EmailConfirmed bool       `json:"emailConfirmed"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	ConfirmedAt    *time.Time `json:"confirmedAt,omitempty"`
}

// SessionTokens groups the bearer credentials issued to authenticated users.
type SessionTokens struct {
	AccessToken      string    `json:"accessToken"`
	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	RefreshToken     string    `json:"refreshToken"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}

// PlanLimits bounds what a subscription tier may consume.
type PlanLimits struct {
	VideosPerMonth      int    `json:"videosPerMonth"`
	StorageGB           int    `json:"storageGB"`
	SchedulingFrequency string `json:"schedulingFrequency"`
}

// PlanFeatures flags the capabilities unlocked by a tier.
type PlanFeatures struct {
	Scheduling           bool `json:"scheduling"`
	Analytics            bool `json:"analytics"`
	ViralVideoRebranding bool `json:"viralVideoRebranding"`
}

// Plan describes a billing tier offered to users.
type Plan struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	PriceCents  int64        `json:"priceCents"`
	Description string       `json:"description"`
	Features    []string     `json:"features"`
	Limits      PlanLimits   `json:"limits"`
	Flags       PlanFeatures `json:"flags"`
}

// Subscription status values.
const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusTrialing = "trialing"
	SubscriptionStatusCanceled = "canceled"
)

// Subscription records the billing plan state for a user.
type Subscription struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	PlanID    string     `json:"planId"`
	Status    string     `json:"status"`
	Limits    PlanLimits `json:"limits"`
	PeriodEnd time.Time  `json:"periodEnd"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ScriptArtifact is a generated script along with its request parameters.
type ScriptArtifact struct {
	ID        string    `json:"scriptId"`
	Topic     string    `json:"topic"`
	Style     string    `json:"tone"`
	Length    string    `json:"length"`
	Body      string    `json:"script"`
	WordCount int       `json:"wordCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// AudioArtifact is a generated voiceover reference.
type AudioArtifact struct {
	ID        string    `json:"audioId"`
	VoiceID   string    `json:"voiceId"`
	AudioURL  string    `json:"audioUrl"`
	Duration  int       `json:"duration"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// VideoArtifact is an assembled video record.
type VideoArtifact struct {
	ID           string    `json:"videoId"`
	ScriptID     string    `json:"scriptId"`
	AudioID      string    `json:"audioId"`
	Status       string    `json:"status"`
	VideoURL     string    `json:"videoUrl"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Artifact status values shared by audio and video records.
const (
	ArtifactStatusProcessing = "processing"
	ArtifactStatusReady      = "ready"
	ArtifactStatusFailed     = "failed"
)

// ScheduledVideo captures a publish-time intent for an assembled video.
type ScheduledVideo struct {
	ID            string    `json:"scheduleId"`
	UserID        string    `json:"userId"`
	VideoID       string    `json:"videoId"`
	Title         string    `json:"title,omitempty"`
	ScheduledTime time.Time `json:"scheduledTime"`
	Visibility    string    `json:"visibility"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// StorageObject references a stored file.
type StorageObject struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

// StorageUsage aggregates object sizes under a user's prefix.
type StorageUsage struct {
	Bytes     int64  `json:"bytes"`
	Megabytes string `json:"megabytes"`
	Gigabytes string `json:"gigabytes"`
	FileCount int    `json:"fileCount"`
}

// APIKeyRecord holds a per-user third-party credential.
type APIKeyRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Service    string    `json:"service"`
	Key        string    `json:"-"`
	Configured bool      `json:"configured"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Channel is a creator channel connected to the video platform.
type Channel struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Name       string    `json:"name"`
	Niche      string    `json:"niche,omitempty"`
	PlatformID string    `json:"platformId"`
	LogoURL    string    `json:"logoUrl,omitempty"`
	BannerURL  string    `json:"bannerUrl,omitempty"`
	Palette    []string  `json:"palette,omitempty"`
	APIKeyID   string    `json:"apiKeyId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TopicIdea is one parsed video-topic suggestion.
type TopicIdea struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// VideoMetadata is generated upload metadata for a video.
type VideoMetadata struct {
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category"`
	Timestamps  string   `json:"timestamps"`
}

// BrandPackage bundles generated channel branding assets.
type BrandPackage struct {
	LogoURL   string   `json:"logoUrl"`
	BannerURL string   `json:"bannerUrl"`
	Palette   []string `json:"palette"`
}

// Category is a video platform upload category.
type Category struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
