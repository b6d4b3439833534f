package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tubeautomator/backend/internal/assets"
	"github.com/tubeautomator/backend/internal/models"
	"github.com/tubeautomator/backend/internal/platform"
	"github.com/tubeautomator/backend/internal/speech"
	"github.com/tubeautomator/backend/internal/storage"
	"github.com/tubeautomator/backend/internal/textgen"
)

type recordingTextGenerator struct {
	textgen.MockGenerator

	lastTitle   string
	lastExcerpt string
}

func (g *recordingTextGenerator) GenerateMetadata(ctx context.Context, title, excerpt string) (models.VideoMetadata, error) {
	g.lastTitle = title
	g.lastExcerpt = excerpt
	return g.MockGenerator.GenerateMetadata(ctx, title, excerpt)
}

type recordingSynthesizer struct {
	lastText string
}

func (s *recordingSynthesizer) Synthesize(_ context.Context, text, _ string) (speech.Result, error) {
	s.lastText = text
	return speech.Result{Audio: []byte("mp3-bytes")}, nil
}

type fakeArtifactStore struct {
	audio []models.AudioArtifact
	video []models.VideoArtifact
}

func (s *fakeArtifactStore) CreateAudio(_ context.Context, artifact models.AudioArtifact, _ string) error {
	s.audio = append(s.audio, artifact)
	return nil
}

func (s *fakeArtifactStore) CreateVideo(_ context.Context, artifact models.VideoArtifact, _ string) error {
	s.video = append(s.video, artifact)
	return nil
}

type fakeAssetQueue struct {
	jobs []assets.Job
}

func (q *fakeAssetQueue) Enqueue(_ context.Context, job assets.Job) error {
	q.jobs = append(q.jobs, job)
	return nil
}

type fakeScheduleStore struct {
	schedules []models.ScheduledVideo
}

func (s *fakeScheduleStore) Create(_ context.Context, schedule models.ScheduledVideo) error {
	s.schedules = append(s.schedules, schedule)
	return nil
}

func (s *fakeScheduleStore) ListForUser(_ context.Context, userID string) ([]models.ScheduledVideo, error) {
	var out []models.ScheduledVideo
	for _, sched := range s.schedules {
		if sched.UserID == userID {
			out = append(out, sched)
		}
	}
	return out, nil
}

func newContentHandler(t *testing.T) (ContentHandler, *recordingSynthesizer, *fakeArtifactStore, *fakeAssetQueue, string) {
	t.Helper()

	synth := &recordingSynthesizer{}
	artifacts := &fakeArtifactStore{}
	queue := &fakeAssetQueue{}
	sessions := newTestSessionManager()

	tokens, err := sessions.Issue(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("issue tokens: %v", err)
	}

	handler := ContentHandler{
		Text:         textgen.MockGenerator{},
		Speech:       synth,
		Artifacts:    artifacts,
		Schedules:    &fakeScheduleStore{},
		Store:        storage.NewMockStore(),
		Platform:     platform.MockPlatform{},
		Assets:       queue,
		Sessions:     sessions,
		DefaultVoice: "voice-default",
	}

	return handler, synth, artifacts, queue, tokens.AccessToken
}

func TestContentHandlerMissingAction(t *testing.T) {
	handler, _, _, _, _ := newContentHandler(t)

	rec := postJSON(t, handler.Handle, "/api/v1/content", map[string]any{"topic": "cats"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d got %d", http.StatusBadRequest, rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if msg, _ := envelope["error"].(string); !strings.Contains(msg, "Action is required") {
		t.Fatalf("expected missing-action error, got %q", msg)
	}
}

func TestContentHandlerGenerateScriptMockContainsTopic(t *testing.T) {
	handler, _, _, _, _ := newContentHandler(t)

	rec := postJSON(t, handler.Handle, "/api/v1/content", map[string]any{
		"action": "generate-script",
		"topic":  "cats",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	envelope := decodeEnvelope(t, rec)
	if envelope["success"] != true {
		t.Fatalf("expected success=true, got %v", envelope["success"])
	}
	script, ok := envelope["script"].(string)
	if !ok {
		t.Fatalf("expected script string, got %T", envelope["script"])
	}
	if !strings.Contains(script, "cats") {
		t.Fatalf("expected script to mention the topic, got %q", script[:80])
	}
	if id, _ := envelope["scriptId"].(string); id == "" {
		t.Fatalf("expected scriptId, got %v", envelope["scriptId"])
	}
	meta, ok := envelope["metadata"].(map[string]any)
	if !ok {
		t.Fatalf("expected metadata object, got %T", envelope["metadata"])
	}
	if meta["topic"] != "cats" || meta["tone"] != "educational" || meta["length"] != "medium" {
		t.Fatalf("unexpected metadata %v", meta)
	}
	if count, _ := meta["wordCount"].(float64); int(count) != len(strings.Fields(script)) {
		t.Fatalf("expected wordCount %d, got %v", len(strings.Fields(script)), meta["wordCount"])
	}
}

func TestContentHandlerGenerateScriptRequiresTopic(t *testing.T) {
	handler, _, _, _, _ := newContentHandler(t)

	rec := postJSON(t, handler.Handle, "/api/v1/content", map[string]any{"action": "generate-script"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d got %d", http.StatusBadRequest, rec.Code)
	}
}

// The generator must only ever see the opening of the script, regardless of
// how much the client sends.
func TestContentHandlerGenerateMetadataTruncatesScript(t *testing.T) {
	handler, _, _, _, _ := newContentHandler(t)
	gen := &recordingTextGenerator{}
	handler.Text = gen

	script := strings.Repeat("word ", 400)
	if len(script) != 2000 {
		t.Fatalf("test setup: expected 2000-char script, got %d", len(script))
	}

	rec := postJSON(t, handler.Handle, "/api/v1/content", map[string]any{
		"action": "generate-metadata",
		"title":  "Kubernetes Basics",
		"script": script,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	if gen.lastTitle != "Kubernetes Basics" {
		t.Fatalf("expected title forwarded, got %q", gen.lastTitle)
	}
	if len(gen.lastExcerpt) != 1000 {
		t.Fatalf("expected 1000-char excerpt, got %d chars", len(gen.lastExcerpt))
	}
	if gen.lastExcerpt != strings.TrimSpace(script)[:1000] {
		t.Fatal("expected excerpt to be the script's opening characters")
	}
}

func TestContentHandlerGenerateMetadataRequiresScript(t *testing.T) {
	handler, _, _, _, _ := newContentHandler(t)

	rec := postJSON(t, handler.Handle, "/api/v1/content", map[string]any{
		"action": "generate-metadata",
		"title":  "Kubernetes Basics",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d got %d", http.StatusBadRequest, rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if msg, _ := envelope["error"].(string); !strings.Contains(msg, "Script is required") {
		t.Fatalf("expected script requirement error, got %q", msg)
	}
}

func TestContentHandlerGenerateVoiceoverStripsVisualNotes(t *testing.T) {
	handler, synth, artifacts, queue, token := newContentHandler(t)

	script := "Welcome to the channel.\n\n[VISUAL NOTES] Pan across skyline\n\nLet's begin.\n[VISUAL NOTES] Cut to b-roll\nThat's all for today."

	body := map[string]any{
		"action": "generate-voiceover",
		"text":   script,
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/content", jsonBody(t, body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	if strings.Contains(synth.lastText, "[VISUAL NOTES]") {
		t.Fatalf("expected visual notes to be stripped, got %q", synth.lastText)
	}

	if len(artifacts.audio) != 1 {
		t.Fatalf("expected one audio artifact, got %d", len(artifacts.audio))
	}
	if artifacts.audio[0].Status != models.ArtifactStatusProcessing {
		t.Fatalf("expected processing status, got %q", artifacts.audio[0].Status)
	}
	if artifacts.audio[0].VoiceID != "voice-default" {
		t.Fatalf("expected default voice, got %q", artifacts.audio[0].VoiceID)
	}

	if len(queue.jobs) != 1 {
		t.Fatalf("expected one queued upload, got %d", len(queue.jobs))
	}
	if !strings.HasPrefix(queue.jobs[0].Key, "users/user-1/audio/") {
		t.Fatalf("expected user-scoped key, got %q", queue.jobs[0].Key)
	}

	envelope := decodeEnvelope(t, rec)
	if envelope["audioId"] == "" || envelope["audioUrl"] == "" {
		t.Fatalf("expected audio reference in response, got %v", envelope)
	}
	if envelope["duration"].(float64) <= 0 {
		t.Fatalf("expected estimated duration, got %v", envelope["duration"])
	}
}

func TestContentHandlerGenerateVoiceoverRequiresAuth(t *testing.T) {
	handler, _, _, _, _ := newContentHandler(t)

	rec := postJSON(t, handler.Handle, "/api/v1/content", map[string]any{
		"action": "generate-voiceover",
		"text":   "Hello world",
	})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestContentHandlerScheduleVideo(t *testing.T) {
	handler, _, _, _, token := newContentHandler(t)
	schedules := handler.Schedules.(*fakeScheduleStore)

	future := time.Now().UTC().Add(48 * time.Hour)

	body := map[string]any{
		"action":       "schedule-video",
		"videoId":      "video-9",
		"title":        "Launch Day",
		"scheduleDate": future.Format("2006-01-02"),
		"scheduleTime": future.Format("15:04"),
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/content", jsonBody(t, body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	envelope := decodeEnvelope(t, rec)
	if envelope["scheduleId"] == "" {
		t.Fatalf("expected scheduleId, got %v", envelope)
	}

	if len(schedules.schedules) != 1 {
		t.Fatalf("expected one schedule, got %d", len(schedules.schedules))
	}
	if schedules.schedules[0].Visibility != "public" {
		t.Fatalf("expected default public visibility, got %q", schedules.schedules[0].Visibility)
	}
}

func TestContentHandlerScheduleVideoRejectsPast(t *testing.T) {
	handler, _, _, _, token := newContentHandler(t)

	body := map[string]any{
		"action":       "schedule-video",
		"videoId":      "video-9",
		"scheduleDate": "2001-01-01",
		"scheduleTime": "09:00",
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/content", jsonBody(t, body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestContentHandlerGetCategories(t *testing.T) {
	handler, _, _, _, _ := newContentHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/content?action=get-categories", nil)
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}

	envelope := decodeEnvelope(t, rec)
	categories, ok := envelope["categories"].([]any)
	if !ok || len(categories) == 0 {
		t.Fatalf("expected categories, got %v", envelope["categories"])
	}
}

func TestContentHandlerGenerateTopics(t *testing.T) {
	handler, _, _, _, _ := newContentHandler(t)

	rec := postJSON(t, handler.Handle, "/api/v1/content", map[string]any{
		"action":   "generate-topics",
		"category": "technology",
		"count":    3,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	envelope := decodeEnvelope(t, rec)
	topics, ok := envelope["topics"].([]any)
	if !ok || len(topics) != 3 {
		t.Fatalf("expected 3 topics, got %v", envelope["topics"])
	}
}
