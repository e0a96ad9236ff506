package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"riftscope/internal/bars"
	"riftscope/internal/config"
	"riftscope/internal/frame"
	"riftscope/internal/hud"
	"riftscope/internal/logging"
	"riftscope/internal/roi"
	"riftscope/internal/timeline"
)

// Job asks for one broadcast frame to be analyzed and merged into a match.
type Job struct {
	Match     string
	URL       string
	Timestamp time.Duration
}

// statsReader is the scoreboard OCR surface a worker needs. hud.Extractor
// satisfies it; tests substitute a stub to avoid a tesseract dependency.
type statsReader interface {
	Extract(img gocv.Mat, tpl *roi.Template) (map[string]hud.Value, error)
	Close() error
}

// Status is a point-in-time view of the pool.
type Status struct {
	Running   bool
	Queued    int
	Processed int
	Failed    int
	LastError string
}

// Manager runs the analysis worker pool. Each worker owns its OCR client;
// bar detection and snapshot assembly are stateless and shared.
type Manager struct {
	cfg       *config.Config
	store     *timeline.Store
	source    frame.Source
	overlay   *roi.Template
	scoreHUD  *roi.Template
	logger    *slog.Logger
	barOpts   bars.Options
	newReader func() (statsReader, error)

	jobs chan Job

	mu        sync.Mutex
	running   bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	processed int
	failed    int
	lastErr   error
}

// NewManager wires the pool. overlay is the resource-bar template,
// scoreboard the OCR field template.
func NewManager(cfg *config.Config, store *timeline.Store, source frame.Source, overlay, scoreboard *roi.Template, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	barOpts, err := bars.OptionsFrom(cfg.Bars)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	queueSize := cfg.Pipeline.QueueSize
	if queueSize <= 0 {
		queueSize = 32
	}

	return &Manager{
		cfg:      cfg,
		store:    store,
		source:   source,
		overlay:  overlay,
		scoreHUD: scoreboard,
		logger:   logging.WithComponent(logger, "pipeline"),
		barOpts:  barOpts,
		newReader: func() (statsReader, error) {
			return hud.NewExtractor(cfg.HUD.TessdataDir, cfg.HUD.Language, logger)
		},
		jobs: make(chan Job, queueSize),
	}, nil
}

// Start launches the configured number of workers.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return errors.New("pipeline already running")
	}

	workers := m.cfg.Pipeline.Workers
	if workers <= 0 {
		workers = 1
	}

	// Readers are built before any worker launches so a broken OCR install
	// fails Start instead of leaving a running pool nobody consumes from.
	readers := make([]statsReader, 0, workers)
	for i := 0; i < workers; i++ {
		reader, err := m.newReader()
		if err != nil {
			for _, r := range readers {
				r.Close()
			}
			return fmt.Errorf("pipeline: scoreboard reader: %w", err)
		}
		readers = append(readers, reader)
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = true
	m.wg.Add(workers)
	for i, reader := range readers {
		go m.runWorker(runCtx, i, reader)
	}
	return nil
}

// Stop cancels in-flight work and waits for the workers to drain.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	m.running = false
	m.cancel = nil
	m.mu.Unlock()

	cancel()
	m.wg.Wait()
}

// Enqueue submits a job, blocking while the queue is full.
func (m *Manager) Enqueue(ctx context.Context, job Job) error {
	select {
	case m.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status reports pool counters.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := Status{
		Running:   m.running,
		Queued:    len(m.jobs),
		Processed: m.processed,
		Failed:    m.failed,
	}
	if m.lastErr != nil {
		st.LastError = m.lastErr.Error()
	}
	return st
}

func (m *Manager) runWorker(ctx context.Context, idx int, reader statsReader) {
	defer m.wg.Done()
	defer reader.Close()
	logger := m.logger.With(logging.Int("worker", idx))

	for {
		select {
		case <-ctx.Done():
			return
		case job := <-m.jobs:
			err := m.processJob(ctx, logger, reader, job)
			m.record(err)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("job failed",
					logging.String(logging.FieldMatch, timeline.Slugify(job.Match)),
					logging.Error(err),
				)
			}
		}
	}
}

func (m *Manager) processJob(ctx context.Context, logger *slog.Logger, reader statsReader, job Job) error {
	jobID := uuid.NewString()
	logger = logger.With(
		logging.String(logging.FieldJobID, jobID),
		logging.String(logging.FieldMatch, timeline.Slugify(job.Match)),
	)
	logger.Info("processing frame", logging.String("url", job.URL), slog.Duration("timestamp", job.Timestamp))

	data, err := m.source.Frame(ctx, job.URL, job.Timestamp)
	if err != nil {
		return fmt.Errorf("fetch frame: %w", err)
	}
	img, err := frame.Decode(data)
	if err != nil {
		return err
	}
	defer img.Close()

	// Detector failures on one family degrade to an empty reading; the
	// snapshot still merges whatever did read.
	health, err := bars.Detect(img, m.overlay, bars.KindHealth, m.barOpts)
	if err != nil {
		logger.Warn("health bars unreadable", logging.Error(err))
	}
	mana, err := bars.Detect(img, m.overlay, bars.KindMana, m.barOpts)
	if err != nil {
		logger.Warn("mana bars unreadable", logging.Error(err))
	}
	stats, err := reader.Extract(img, m.scoreHUD)
	if err != nil {
		return fmt.Errorf("scoreboard: %w", err)
	}

	fragment, clock, err := SnapshotFromDetections(health, mana, stats)
	if err != nil {
		return err
	}

	// A cancelled job must not half-commit its snapshot.
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.store.MergeSnapshot(ctx, job.Match, clock, fragment); err != nil {
		return fmt.Errorf("merge snapshot: %w", err)
	}

	logger.Info("snapshot merged", logging.String(logging.FieldClock, clock))
	return nil
}

func (m *Manager) record(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.failed++
		m.lastErr = err
		return
	}
	m.processed++
}
