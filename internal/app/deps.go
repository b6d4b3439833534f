package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tubeautomator/backend/internal/assets"
	"github.com/tubeautomator/backend/internal/auth"
	"github.com/tubeautomator/backend/internal/billing"
	"github.com/tubeautomator/backend/internal/branding"
	"github.com/tubeautomator/backend/internal/config"
	"github.com/tubeautomator/backend/internal/db"
	"github.com/tubeautomator/backend/internal/handlers"
	"github.com/tubeautomator/backend/internal/mailer"
	"github.com/tubeautomator/backend/internal/middleware"
	"github.com/tubeautomator/backend/internal/platform"
	"github.com/tubeautomator/backend/internal/repositories"
	"github.com/tubeautomator/backend/internal/speech"
	"github.com/tubeautomator/backend/internal/storage"
	"github.com/tubeautomator/backend/internal/textgen"
)

// buildDependencies wires together concrete implementations used by the HTTP
// handlers. Each collaborator is selected exactly once: a real adapter when
// its credential is configured, a deterministic mock otherwise. In production
// the real adapter is kept so a missing credential surfaces as a
// not-configured error instead of silently serving mock content.
func buildDependencies(ctx context.Context, pool db.Pool, cfg config.Config, logger *slog.Logger) (handlers.Dependencies, *assets.Uploader, error) {
	sessionStore := repositories.NewPostgresSessionStore(pool)
	artifacts := repositories.NewPostgresArtifactRepository(pool)

	var text handlers.TextGenerator = textgen.NewOpenAIGenerator(cfg.OpenAIKey)
	if cfg.OpenAIKey == "" && !cfg.IsProduction() {
		text = textgen.MockGenerator{}
	}

	var synth handlers.SpeechSynthesizer = speech.NewElevenLabsSynthesizer(cfg.ElevenLabsKey, cfg.TTSTimeout)
	if cfg.ElevenLabsKey == "" && !cfg.IsProduction() {
		synth = speech.MockSynthesizer{}
	}

	var store storage.ObjectStore
	if cfg.ObjectStore.Bucket != "" {
		s3Store, err := storage.NewS3Store(ctx, cfg.ObjectStore)
		if err != nil {
			return handlers.Dependencies{}, nil, fmt.Errorf("build object store: %w", err)
		}
		store = s3Store
	} else if cfg.IsProduction() {
		return handlers.Dependencies{}, nil, fmt.Errorf("build object store: %w", storage.ErrNotConfigured)
	} else {
		store = storage.NewMockStore()
	}

	var biller handlers.Biller = billing.NewStripeBiller(cfg.StripeKey)
	if cfg.StripeKey == "" && !cfg.IsProduction() {
		biller = billing.MockBiller{}
	}

	var images branding.ImageGenerator = branding.NewOpenAIImageGenerator(cfg.OpenAIKey)
	if cfg.OpenAIKey == "" && !cfg.IsProduction() {
		images = branding.MockImageGenerator{}
	}

	var videoPlatform handlers.VideoPlatform = platform.NewYouTubePlatform(cfg.YouTubeKey)
	if cfg.YouTubeKey == "" && !cfg.IsProduction() {
		videoPlatform = platform.MockPlatform{}
	}

	var mail handlers.Mailer = mailer.NewSendGridMailer(cfg.SendGridKey, cfg.SenderEmail)
	if cfg.SendGridKey == "" && !cfg.IsProduction() {
		mail = mailer.NewMockMailer()
	}

	var oauth handlers.OAuthService
	if cfg.GoogleOAuth.ClientID != "" || cfg.GitHubOAuth.ClientID != "" {
		oauth = auth.NewOAuthProviders(
			cfg.GoogleOAuth.ClientID, cfg.GoogleOAuth.RedirectURL,
			cfg.GitHubOAuth.ClientID, cfg.GitHubOAuth.RedirectURL,
		)
	}

	uploader := assets.NewUploader(store, artifacts, assets.UploaderConfig{}, logger)

	deps := handlers.Dependencies{
		Users:         repositories.NewPostgresUserRepository(pool),
		Sessions:      auth.NewManager(cfg.AccessTokenTTL, cfg.RefreshTokenTTL, sessionStore),
		Subscriptions: repositories.NewPostgresSubscriptionRepository(pool),
		Schedules:     repositories.NewPostgresScheduleRepository(pool),
		Channels:      repositories.NewPostgresChannelRepository(pool),
		Keys:          repositories.NewPostgresAPIKeyRepository(pool),
		Artifacts:     artifacts,

		Text:     text,
		Speech:   synth,
		Store:    store,
		Biller:   biller,
		Brand:    branding.NewService(images),
		Platform: videoPlatform,
		Mail:     mail,
		Assets:   uploader,
		OAuth:    oauth,

		AuthLimiter: middleware.NewIPRateLimiter(10, time.Minute, 5, 10*time.Minute),

		RequireEmailConfirmation: cfg.RequireEmailConfirmation,
		DemoEmail:                cfg.DemoEmail,
		DemoPassword:             cfg.DemoPassword,
		DefaultVoice:             cfg.DefaultVoice,
	}

	return deps, uploader, nil
}
