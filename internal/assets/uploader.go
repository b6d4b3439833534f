package assets

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/tubeautomator/backend/internal/storage"
)

// ArtifactUpdater persists status updates for generated artifacts.
type ArtifactUpdater interface {
	MarkAudioReady(ctx context.Context, audioID, location string) error
	MarkAudioFailed(ctx context.Context, audioID string) error
}

// UploaderConfig controls the concurrency characteristics of the uploader.
type UploaderConfig struct {
	QueueSize int
	Workers   int
}

// Job is a pending artifact upload.
type Job struct {
	AudioID     string
	Key         string
	ContentType string
	Body        []byte
}

// Uploader asynchronously persists generated artifacts to the object store.
type Uploader struct {
	store   storage.ObjectStore
	updater ArtifactUpdater
	logger  *slog.Logger

	jobs   chan Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

var errUploaderClosed = errors.New("asset uploader closed")

// NewUploader constructs a background worker pool that persists artifacts.
func NewUploader(store storage.ObjectStore, updater ArtifactUpdater, cfg UploaderConfig, logger *slog.Logger) *Uploader {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 16
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	u := &Uploader{
		store:   store,
		updater: updater,
		logger:  logger,
		jobs:    make(chan Job, cfg.QueueSize),
		ctx:     ctx,
		cancel:  cancel,
	}

	u.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go u.worker()
	}

	return u
}

// Enqueue schedules persistence of the artifact bytes.
func (u *Uploader) Enqueue(ctx context.Context, job Job) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-u.ctx.Done():
		return errUploaderClosed
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-u.ctx.Done():
		return errUploaderClosed
	case u.jobs <- job:
		return nil
	}
}

// Shutdown waits for the worker pool to drain outstanding jobs.
func (u *Uploader) Shutdown(ctx context.Context) error {
	u.once.Do(func() {
		u.cancel()
		close(u.jobs)
	})

	done := make(chan struct{})
	go func() {
		u.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

func (u *Uploader) worker() {
	defer u.wg.Done()

	for job := range u.jobs {
		u.process(job)
	}
}

func (u *Uploader) process(job Job) {
	// Jobs already accepted keep a bounded window to finish during shutdown.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	location, err := u.store.Upload(ctx, job.Key, job.ContentType, bytes.NewReader(job.Body))
	if err != nil {
		u.logger.Error("artifact upload failed", "audioId", job.AudioID, "key", job.Key, "error", err)
		if err := u.updater.MarkAudioFailed(ctx, job.AudioID); err != nil {
			u.logger.Error("mark artifact failed", "audioId", job.AudioID, "error", err)
		}
		return
	}

	if err := u.updater.MarkAudioReady(ctx, job.AudioID, location); err != nil {
		u.logger.Error("mark artifact ready", "audioId", job.AudioID, "error", err)
		return
	}

	u.logger.Info("artifact persisted", "audioId", job.AudioID, "location", location)
}
