package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tubeautomator/backend/internal/assets"
	"github.com/tubeautomator/backend/internal/logging"
	"github.com/tubeautomator/backend/internal/mailer"
	"github.com/tubeautomator/backend/internal/models"
	"github.com/tubeautomator/backend/internal/speech"
	"github.com/tubeautomator/backend/internal/storage"
	"github.com/tubeautomator/backend/internal/textgen"
)

const (
	defaultTopicCount    = 5
	metadataExcerptLimit = 1000
)

// ContentHandler implements the content generation gateway.
type ContentHandler struct {
	Text      TextGenerator
	Speech    SpeechSynthesizer
	Artifacts ArtifactStore
	Schedules ScheduleStore
	Store     ObjectStore
	Platform  VideoPlatform
	Assets    AssetQueue
	Sessions  SessionManager
	Users     UserStore
	Mail      Mailer

	DefaultVoice string
	NowFunc      func() time.Time
}

type contentRequest struct {
	Action string `json:"action"`

	Topic    string `json:"topic"`
	Style    string `json:"style"`
	Length   string `json:"length"`
	Category string `json:"category"`
	Count    int    `json:"count"`

	Text    string `json:"text"`
	Script  string `json:"script"`
	VoiceID string `json:"voiceId"`

	Title string `json:"title"`

	ScriptID string `json:"scriptId"`
	AudioID  string `json:"audioId"`

	VideoID      string `json:"videoId"`
	ScheduleDate string `json:"scheduleDate"`
	ScheduleTime string `json:"scheduleTime"`
	Visibility   string `json:"visibility"`
}

// Handle dispatches POST /api/v1/content and GET /api/v1/content?action=get-categories.
func (h ContentHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		if r.URL.Query().Get("action") != "get-categories" {
			respondError(ctx, w, http.StatusBadRequest, msgInvalidAction, CodeBadRequest)
			return
		}
		h.categories(ctx, w)
	case http.MethodPost:
		var req contentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(ctx, w, http.StatusBadRequest, "Invalid request body", CodeBadRequest)
			return
		}

		switch req.Action {
		case "":
			respondError(ctx, w, http.StatusBadRequest, msgActionRequired, CodeBadRequest)
		case "generate-script":
			h.generateScript(ctx, w, req)
		case "generate-topics":
			h.generateTopics(ctx, w, req)
		case "generate-voiceover":
			h.generateVoiceover(ctx, w, r, req)
		case "generate-metadata":
			h.generateMetadata(ctx, w, req)
		case "assemble-video":
			h.assembleVideo(ctx, w, r, req)
		case "schedule-video":
			h.scheduleVideo(ctx, w, r, req)
		case "get-categories":
			h.categories(ctx, w)
		default:
			respondError(ctx, w, http.StatusBadRequest, msgInvalidAction, CodeBadRequest)
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h ContentHandler) generateScript(ctx context.Context, w http.ResponseWriter, req contentRequest) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		respondError(ctx, w, http.StatusBadRequest, "Topic is required", CodeBadRequest)
		return
	}

	genReq := textgen.ScriptRequest{
		Topic:  topic,
		Style:  req.Style,
		Length: req.Length,
	}
	if genReq.Style == "" {
		genReq.Style = textgen.StyleEducational
	}
	if genReq.Length == "" {
		genReq.Length = textgen.LengthMedium
	}
	if !textgen.ValidStyle(genReq.Style) {
		respondError(ctx, w, http.StatusBadRequest, fmt.Sprintf("Unknown style %q", genReq.Style), CodeBadRequest)
		return
	}
	if !textgen.ValidLength(genReq.Length) {
		respondError(ctx, w, http.StatusBadRequest, fmt.Sprintf("Unknown length %q", genReq.Length), CodeBadRequest)
		return
	}

	script, err := h.Text.GenerateScript(ctx, genReq)
	if err != nil {
		logging.FromContext(ctx).Error("generate script", "topic", topic, "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"script":  nil,
			"error":   fmt.Sprintf("Error generating script: %v", err),
			"code":    CodeInternal,
		})
		return
	}

	respondSuccess(ctx, w, map[string]any{
		"script":   script,
		"scriptId": uuid.NewString(),
		"metadata": map[string]any{
			"topic":     topic,
			"length":    genReq.Length,
			"tone":      genReq.Style,
			"createdAt": h.now(),
			"wordCount": len(strings.Fields(script)),
		},
	})
}

func (h ContentHandler) generateTopics(ctx context.Context, w http.ResponseWriter, req contentRequest) {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		respondError(ctx, w, http.StatusBadRequest, "Category is required", CodeBadRequest)
		return
	}

	count := req.Count
	if count <= 0 {
		count = defaultTopicCount
	}

	topics, err := h.Text.GenerateTopics(ctx, category, count)
	if err != nil {
		if errors.Is(err, textgen.ErrParse) {
			respondError(ctx, w, http.StatusInternalServerError, "Could not parse topic ideas from the model response", CodeParseError)
			return
		}
		respondInternal(ctx, w, fmt.Errorf("generate topics: %w", err))
		return
	}

	respondSuccess(ctx, w, map[string]any{"topics": topics})
}

func (h ContentHandler) generateVoiceover(ctx context.Context, w http.ResponseWriter, r *http.Request, req contentRequest) {
	userID, ok := h.requireUser(ctx, w, r)
	if !ok {
		return
	}

	script := strings.TrimSpace(req.Text)
	if script == "" {
		script = strings.TrimSpace(req.Script)
	}
	if script == "" {
		respondError(ctx, w, http.StatusBadRequest, "Text is required", CodeBadRequest)
		return
	}

	voiceID := req.VoiceID
	if voiceID == "" {
		voiceID = h.DefaultVoice
	}

	ctx, span := logging.StartSpan(ctx, "generate-voiceover")
	defer span.End()

	// Production markers are stage directions for the editor, not narration.
	cleaned := speech.CleanScript(script)
	if cleaned == "" {
		respondError(ctx, w, http.StatusBadRequest, "Script contains no narratable text", CodeBadRequest)
		return
	}

	result, err := h.Speech.Synthesize(ctx, cleaned, voiceID)
	if err != nil {
		if errors.Is(err, speech.ErrNotConfigured) {
			respondError(ctx, w, http.StatusBadRequest, "Text-to-speech is not configured", CodeNotConfigured)
			return
		}
		respondInternal(ctx, w, fmt.Errorf("synthesize voiceover: %w", err))
		return
	}

	duration := result.Duration
	if duration == 0 {
		duration = speech.EstimateDuration(cleaned)
	}

	audioID := uuid.NewString()
	key := storage.UserPrefix(userID) + "audio/" + audioID + ".mp3"

	artifact := models.AudioArtifact{
		ID:        audioID,
		VoiceID:   voiceID,
		Duration:  duration,
		Status:    models.ArtifactStatusProcessing,
		CreatedAt: h.now(),
	}
	if err := h.Artifacts.CreateAudio(ctx, artifact, userID); err != nil {
		respondInternal(ctx, w, fmt.Errorf("record audio artifact: %w", err))
		return
	}

	if err := h.Assets.Enqueue(ctx, assets.Job{
		AudioID:     audioID,
		Key:         key,
		ContentType: "audio/mpeg",
		Body:        result.Audio,
	}); err != nil {
		respondInternal(ctx, w, fmt.Errorf("enqueue audio upload: %w", err))
		return
	}

	audioURL, err := h.Store.PresignGet(ctx, key, storage.DefaultSignedURLTTL)
	if err != nil {
		respondInternal(ctx, w, fmt.Errorf("presign audio url: %w", err))
		return
	}

	respondSuccess(ctx, w, map[string]any{
		"audioId":  audioID,
		"audioUrl": audioURL,
		"duration": duration,
	})
}

func (h ContentHandler) generateMetadata(ctx context.Context, w http.ResponseWriter, req contentRequest) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		respondError(ctx, w, http.StatusBadRequest, "Title is required", CodeBadRequest)
		return
	}

	script := strings.TrimSpace(req.Script)
	if script == "" {
		script = strings.TrimSpace(req.Text)
	}
	if script == "" {
		respondError(ctx, w, http.StatusBadRequest, "Script is required", CodeBadRequest)
		return
	}

	// The opening of the script is enough signal for metadata; the model never
	// sees more than the first metadataExcerptLimit characters.
	excerpt := script
	if len(excerpt) > metadataExcerptLimit {
		excerpt = excerpt[:metadataExcerptLimit]
	}

	meta, err := h.Text.GenerateMetadata(ctx, title, excerpt)
	if err != nil {
		if errors.Is(err, textgen.ErrParse) {
			respondError(ctx, w, http.StatusInternalServerError, "Could not parse metadata from the model response", CodeParseError)
			return
		}
		respondInternal(ctx, w, fmt.Errorf("generate metadata: %w", err))
		return
	}

	respondSuccess(ctx, w, map[string]any{"metadata": meta})
}

// assembleVideo registers the assembly intent. Rendering runs elsewhere; the
// record starts in the processing state and the caller polls it.
func (h ContentHandler) assembleVideo(ctx context.Context, w http.ResponseWriter, r *http.Request, req contentRequest) {
	userID, ok := h.requireUser(ctx, w, r)
	if !ok {
		return
	}

	if strings.TrimSpace(req.ScriptID) == "" || strings.TrimSpace(req.AudioID) == "" {
		respondError(ctx, w, http.StatusBadRequest, "Script ID and audio ID are required", CodeBadRequest)
		return
	}

	videoID := uuid.NewString()
	videoKey := storage.UserPrefix(userID) + "videos/" + videoID + ".mp4"
	thumbKey := storage.UserPrefix(userID) + "thumbnails/" + videoID + ".jpg"

	videoURL, err := h.Store.PresignGet(ctx, videoKey, storage.DefaultSignedURLTTL)
	if err != nil {
		respondInternal(ctx, w, fmt.Errorf("presign video url: %w", err))
		return
	}
	thumbnailURL, err := h.Store.PresignGet(ctx, thumbKey, storage.DefaultSignedURLTTL)
	if err != nil {
		respondInternal(ctx, w, fmt.Errorf("presign thumbnail url: %w", err))
		return
	}

	artifact := models.VideoArtifact{
		ID:           videoID,
		ScriptID:     req.ScriptID,
		AudioID:      req.AudioID,
		Status:       models.ArtifactStatusProcessing,
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
		CreatedAt:    h.now(),
	}
	if err := h.Artifacts.CreateVideo(ctx, artifact, userID); err != nil {
		respondInternal(ctx, w, fmt.Errorf("record video artifact: %w", err))
		return
	}

	respondSuccess(ctx, w, map[string]any{
		"videoId":      videoID,
		"videoUrl":     videoURL,
		"thumbnailUrl": thumbnailURL,
		"status":       artifact.Status,
	})
}

func (h ContentHandler) scheduleVideo(ctx context.Context, w http.ResponseWriter, r *http.Request, req contentRequest) {
	userID, ok := h.requireUser(ctx, w, r)
	if !ok {
		return
	}

	if strings.TrimSpace(req.VideoID) == "" {
		respondError(ctx, w, http.StatusBadRequest, "Video ID is required", CodeBadRequest)
		return
	}
	if req.ScheduleDate == "" || req.ScheduleTime == "" {
		respondError(ctx, w, http.StatusBadRequest, "Schedule date and time are required", CodeBadRequest)
		return
	}

	when, err := time.Parse("2006-01-02 15:04", req.ScheduleDate+" "+req.ScheduleTime)
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, "Invalid schedule date or time", CodeBadRequest)
		return
	}
	if when.Before(h.now()) {
		respondError(ctx, w, http.StatusBadRequest, "Scheduled time must be in the future", CodeBadRequest)
		return
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = "public"
	}

	schedule := models.ScheduledVideo{
		ID:            uuid.NewString(),
		UserID:        userID,
		VideoID:       req.VideoID,
		Title:         strings.TrimSpace(req.Title),
		ScheduledTime: when.UTC(),
		Visibility:    visibility,
		Status:        "scheduled",
		CreatedAt:     h.now(),
	}
	if err := h.Schedules.Create(ctx, schedule); err != nil {
		respondInternal(ctx, w, fmt.Errorf("create schedule: %w", err))
		return
	}

	h.sendScheduleConfirmation(ctx, userID, schedule)

	respondSuccess(ctx, w, map[string]any{
		"scheduleId": schedule.ID,
		"schedule":   schedule,
	})
}

// sendScheduleConfirmation emails the owner about the recorded publish intent.
// Best effort: failures are logged and never fail the request.
func (h ContentHandler) sendScheduleConfirmation(ctx context.Context, userID string, schedule models.ScheduledVideo) {
	if h.Mail == nil || h.Users == nil {
		return
	}

	user, err := h.Users.FindByID(ctx, userID)
	if err != nil {
		logging.FromContext(ctx).Warn("schedule confirmation lookup failed", "userId", userID, "error", err)
		return
	}

	when := schedule.ScheduledTime.Format("2006-01-02 15:04 MST")
	msg := mailer.Message{
		ToEmail:   user.Email,
		ToName:    user.FullName,
		Subject:   "Your video is scheduled",
		PlainBody: fmt.Sprintf("Your video is scheduled to publish at %s with %s visibility.", when, schedule.Visibility),
		HTMLBody:  fmt.Sprintf("<p>Your video is scheduled to publish at <strong>%s</strong> with %s visibility.</p>", when, schedule.Visibility),
	}
	if err := h.Mail.Send(ctx, msg); err != nil {
		logging.FromContext(ctx).Warn("schedule confirmation email failed", "userId", userID, "scheduleId", schedule.ID, "error", err)
	}
}

func (h ContentHandler) categories(ctx context.Context, w http.ResponseWriter) {
	categories, err := h.Platform.Categories(ctx)
	if err != nil {
		respondInternal(ctx, w, fmt.Errorf("list categories: %w", err))
		return
	}

	respondSuccess(ctx, w, map[string]any{"categories": categories})
}

func (h ContentHandler) requireUser(ctx context.Context, w http.ResponseWriter, r *http.Request) (string, bool) {
	token := bearerToken(r)
	if token == "" {
		respondError(ctx, w, http.StatusUnauthorized, "Authentication required", CodeUnauthorized)
		return "", false
	}

	userID, err := h.Sessions.Resolve(ctx, token)
	if err != nil {
		respondError(ctx, w, http.StatusUnauthorized, "Authentication required", CodeUnauthorized)
		return "", false
	}

	return userID, true
}

func (h ContentHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}
