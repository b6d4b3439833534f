package handlers

import (
	"context"

	"github.com/tubeautomator/backend/internal/assets"
	"github.com/tubeautomator/backend/internal/billing"
	"github.com/tubeautomator/backend/internal/mailer"
	"github.com/tubeautomator/backend/internal/models"
	"github.com/tubeautomator/backend/internal/platform"
	"github.com/tubeautomator/backend/internal/speech"
	"github.com/tubeautomator/backend/internal/storage"
	"github.com/tubeautomator/backend/internal/textgen"
)

// UserStore captures the persistence operations required by the auth handlers.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	Update(ctx context.Context, user models.User) error
}

// SessionManager issues, resolves and refreshes authentication tokens.
type SessionManager interface {
	Issue(ctx context.Context, userID string) (models.SessionTokens, error)
	Refresh(ctx context.Context, refreshToken string) (models.SessionTokens, error)
	Resolve(ctx context.Context, accessToken string) (string, error)
	Revoke(ctx context.Context, refreshToken string)
}

// SubscriptionStore captures persistence for billing plan state.
type SubscriptionStore interface {
	Upsert(ctx context.Context, sub models.Subscription) error
	FindByUser(ctx context.Context, userID string) (models.Subscription, error)
}

// ScheduleStore captures persistence for publish intents.
type ScheduleStore interface {
	Create(ctx context.Context, schedule models.ScheduledVideo) error
	ListForUser(ctx context.Context, userID string) ([]models.ScheduledVideo, error)
}

// ChannelStore captures persistence for creator channels.
type ChannelStore interface {
	Create(ctx context.Context, channel models.Channel) error
	FindByUser(ctx context.Context, userID string) (models.Channel, error)
}

// APIKeyStore captures persistence for per-user third-party credentials.
type APIKeyStore interface {
	Upsert(ctx context.Context, record models.APIKeyRecord) error
	Find(ctx context.Context, userID, service string) (models.APIKeyRecord, error)
	StatusForUser(ctx context.Context, userID string) (map[string]bool, error)
}

// ArtifactStore captures persistence for generated audio and video artifacts.
type ArtifactStore interface {
	CreateAudio(ctx context.Context, artifact models.AudioArtifact, userID string) error
	CreateVideo(ctx context.Context, artifact models.VideoArtifact, userID string) error
}

// TextGenerator produces scripts, topic ideas and upload metadata.
type TextGenerator interface {
	GenerateScript(ctx context.Context, req textgen.ScriptRequest) (string, error)
	GenerateTopics(ctx context.Context, category string, count int) ([]models.TopicIdea, error)
	GenerateMetadata(ctx context.Context, title, excerpt string) (models.VideoMetadata, error)
}

// SpeechSynthesizer converts cleaned script text to audio.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) (speech.Result, error)
}

// ObjectStore is the object storage collaborator used by the storage gateway.
type ObjectStore = storage.ObjectStore

// Biller creates hosted checkout sessions.
type Biller interface {
	CreateCheckout(ctx context.Context, req billing.CheckoutRequest) (string, error)
}

// BrandService composes branding assets.
type BrandService interface {
	Logo(ctx context.Context, name, niche, style string) (string, error)
	Banner(ctx context.Context, name, niche, style string) (string, error)
	Thumbnail(ctx context.Context, title, niche, style string) (string, error)
	BrandPackage(ctx context.Context, name, niche string) (models.BrandPackage, error)
}

// VideoPlatform wraps the video platform's data API.
type VideoPlatform interface {
	ValidateKey(ctx context.Context, apiKey string) (bool, error)
	Categories(ctx context.Context) ([]models.Category, error)
	CreateChannel(ctx context.Context, name, niche string) (platform.Channel, error)
}

// Mailer sends transactional email; failures never fail a request.
type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// AssetQueue schedules background persistence of generated artifact bytes.
type AssetQueue interface {
	Enqueue(ctx context.Context, job assets.Job) error
}
