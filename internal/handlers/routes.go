package handlers

import (
	"net/http"
	"time"
)

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Users         UserStore
	Sessions      SessionManager
	Subscriptions SubscriptionStore
	Schedules     ScheduleStore
	Channels      ChannelStore
	Keys          APIKeyStore
	Artifacts     ArtifactStore

	Text     TextGenerator
	Speech   SpeechSynthesizer
	Store    ObjectStore
	Biller   Biller
	Brand    BrandService
	Platform VideoPlatform
	Mail     Mailer
	Assets   AssetQueue
	OAuth    OAuthService

	AuthLimiter RateLimiter

	RequireEmailConfirmation bool
	DemoEmail                string
	DemoPassword             string
	DefaultVoice             string
	NowFunc                  func() time.Time
}

// RegisterRoutes wires HTTP handlers into the provided ServeMux.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	health := HealthHandler{}
	auth := AuthHandler{
		Users:                    deps.Users,
		Sessions:                 deps.Sessions,
		Subscriptions:            deps.Subscriptions,
		OAuth:                    deps.OAuth,
		Mail:                     deps.Mail,
		RequireEmailConfirmation: deps.RequireEmailConfirmation,
		DemoEmail:                deps.DemoEmail,
		DemoPassword:             deps.DemoPassword,
		NowFunc:                  deps.NowFunc,
	}
	content := ContentHandler{
		Text:         deps.Text,
		Speech:       deps.Speech,
		Artifacts:    deps.Artifacts,
		Schedules:    deps.Schedules,
		Store:        deps.Store,
		Platform:     deps.Platform,
		Assets:       deps.Assets,
		Sessions:     deps.Sessions,
		Users:        deps.Users,
		Mail:         deps.Mail,
		DefaultVoice: deps.DefaultVoice,
		NowFunc:      deps.NowFunc,
	}
	payment := PaymentHandler{
		Subscriptions: deps.Subscriptions,
		Biller:        deps.Biller,
		NowFunc:       deps.NowFunc,
	}
	store := StorageHandler{Store: deps.Store}
	keys := APIKeyHandler{Keys: deps.Keys, Platform: deps.Platform, NowFunc: deps.NowFunc}
	brand := BrandHandler{Brand: deps.Brand}
	channel := ChannelHandler{
		Channels:      deps.Channels,
		Subscriptions: deps.Subscriptions,
		Brand:         deps.Brand,
		Platform:      deps.Platform,
		Keys:          deps.Keys,
		NowFunc:       deps.NowFunc,
	}
	analytics := AnalyticsHandler{Schedules: deps.Schedules}

	mux.HandleFunc("/healthz", health.Handle)
	mux.HandleFunc("/api/v1/auth", withRateLimit(deps.AuthLimiter, "auth", auth.Handle))
	mux.HandleFunc("/api/v1/content", content.Handle)
	mux.HandleFunc("/api/v1/payment", payment.Handle)
	mux.HandleFunc("/api/v1/storage", store.Handle)
	mux.HandleFunc("/api/v1/api-keys", keys.Handle)
	mux.HandleFunc("/api/v1/brand", brand.Handle)
	mux.HandleFunc("/api/v1/youtube-channel", channel.Handle)
	mux.HandleFunc("/api/v1/analytics", analytics.Handle)
}
