package harvest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"demosongs/internal/catalog"
	"demosongs/internal/config"
	"demosongs/internal/descstore"
	"demosongs/internal/logging"
	"demosongs/internal/output"
	"demosongs/internal/songs"
)

// ErrLocked reports another run holding the data directory lock.
var ErrLocked = errors.New("another demosongs run is in progress")

// Source names where a batch came from.
const (
	SourceYouTube = "youtube"
	SourceCache   = "cache"
)

// Cache is the subset of the description store a Runner needs.
type Cache interface {
	Save(ctx context.Context, runID string, videos []catalog.Video) error
	Load(ctx context.Context) ([]catalog.Video, error)
}

var _ Cache = (*descstore.Store)(nil)

// Options controls a single Run.
type Options struct {
	// Offline reads the batch from the cache instead of YouTube.
	Offline bool
	// OutputPath overrides the configured songs file.
	OutputPath string
	// DumpDir, when set, also writes the debug description dump there.
	DumpDir string
	// DryRun skips writing the songs file.
	DryRun bool
}

// Batch is a collected set of videos and where it came from.
type Batch struct {
	RunID  string
	Source string
	Videos []catalog.Video
}

// Descriptions returns the batch descriptions in order.
func (b Batch) Descriptions() []string {
	return catalog.Descriptions(b.Videos)
}

// Summary describes a completed run.
type Summary struct {
	RunID      string
	Source     string
	Videos     int
	Titles     []string
	Report     songs.Report
	OutputPath string
	DumpDir    string
	Dumped     int
	Duration   time.Duration
}

// Runner wires the catalog source, the cache and the extractor together.
type Runner struct {
	cfg    *config.Config
	source catalog.Source
	cache  Cache
	tables *songs.Tables
	logger *slog.Logger
	newID  func() string
	now    func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithTables overrides the identifier and exclusion tables.
func WithTables(tables *songs.Tables) Option {
	return func(r *Runner) {
		if tables != nil {
			r.tables = tables
		}
	}
}

// WithRunIDGenerator overrides run ID generation.
func WithRunIDGenerator(fn func() string) Option {
	return func(r *Runner) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// NewRunner creates a Runner. source may be nil when only offline runs are
// made; cache may be nil when caching is disabled.
func NewRunner(cfg *config.Config, source catalog.Source, cache Cache, logger *slog.Logger, opts ...Option) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	r := &Runner{
		cfg:    cfg,
		source: source,
		cache:  cache,
		tables: songs.DefaultTables(),
		logger: logging.NewComponentLogger(logger, "harvest"),
		newID:  uuid.NewString,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Tables returns the identifier and exclusion tables the runner extracts with.
func (r *Runner) Tables() *songs.Tables {
	return r.tables
}

// Collect gathers the description batch under the run lock.
func (r *Runner) Collect(ctx context.Context, offline bool) (Batch, error) {
	unlock, err := r.acquireLock()
	if err != nil {
		return Batch{}, err
	}
	defer unlock()

	runID := r.newID()
	return r.collect(ctx, runID, offline)
}

// Run performs a full extraction pass and returns its summary.
func (r *Runner) Run(ctx context.Context, opts Options) (*Summary, error) {
	unlock, err := r.acquireLock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	started := r.now()
	runID := r.newID()
	logger := r.logger.With(logging.String(logging.FieldRunID, runID))

	batch, err := r.collect(ctx, runID, opts.Offline)
	if err != nil {
		return nil, err
	}

	descriptions := batch.Descriptions()
	result := songs.Process(r.tables, descriptions)
	r.logDescriptions(logger, batch, result.Report)

	summary := &Summary{
		RunID:  runID,
		Source: batch.Source,
		Videos: len(batch.Videos),
		Titles: result.Titles,
		Report: result.Report,
	}

	if !opts.DryRun {
		outputPath := strings.TrimSpace(opts.OutputPath)
		if outputPath == "" {
			outputPath = r.cfg.Paths.OutputFile
		}
		if err := output.WriteSongs(outputPath, result.Titles); err != nil {
			return nil, err
		}
		summary.OutputPath = outputPath
		logger.Info("songs file written",
			logging.String(logging.FieldEventType, "songs_written"),
			logging.String(logging.FieldPath, outputPath),
			logging.Int("title_count", len(result.Titles)),
		)
	}

	if dir := strings.TrimSpace(opts.DumpDir); dir != "" {
		dumped, err := output.DumpDescriptions(dir, r.tables, descriptions)
		if err != nil {
			return nil, err
		}
		summary.DumpDir = dir
		summary.Dumped = dumped
		logger.Info("descriptions dumped",
			logging.String(logging.FieldEventType, "descriptions_dumped"),
			logging.String(logging.FieldPath, dir),
			logging.Int("file_count", dumped),
		)
	}

	summary.Duration = r.now().Sub(started)
	logger.Info("harvest complete",
		logging.String(logging.FieldEventType, "harvest_complete"),
		logging.String("source", batch.Source),
		logging.Int("video_count", summary.Videos),
		logging.Int("candidate_count", result.Report.Candidates),
		logging.Int("title_count", len(result.Titles)),
		logging.Duration("duration", summary.Duration),
	)
	return summary, nil
}

func (r *Runner) collect(ctx context.Context, runID string, offline bool) (Batch, error) {
	logger := r.logger.With(logging.String(logging.FieldRunID, runID))

	if offline {
		if r.cache == nil {
			return Batch{}, errors.New("offline mode requires the description cache (cache.enabled = true)")
		}
		videos, err := r.cache.Load(ctx)
		if errors.Is(err, descstore.ErrEmpty) {
			return Batch{}, fmt.Errorf("%w; run extract without --offline first", err)
		}
		if err != nil {
			return Batch{}, fmt.Errorf("load cached descriptions: %w", err)
		}
		logger.Debug("loaded cached descriptions", logging.Int("video_count", len(videos)))
		return Batch{RunID: runID, Source: SourceCache, Videos: videos}, nil
	}

	if r.source == nil {
		return Batch{}, errors.New("catalog source unavailable")
	}
	videos, err := r.source.Videos(ctx)
	if err != nil {
		return Batch{}, fmt.Errorf("fetch descriptions: %w", err)
	}
	logger.Info("descriptions fetched",
		logging.String(logging.FieldEventType, "descriptions_fetched"),
		logging.Int("video_count", len(videos)),
	)

	if r.cache != nil {
		if err := r.cache.Save(ctx, runID, videos); err != nil {
			logging.WarnWithContext(logger, "description cache update failed", "cache_save_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check cache.path permissions or run cache clear"),
				logging.String(logging.FieldImpact, "offline runs will use the previous batch"),
			)
		}
	}
	return Batch{RunID: runID, Source: SourceYouTube, Videos: videos}, nil
}

func (r *Runner) logDescriptions(logger *slog.Logger, batch Batch, report songs.Report) {
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for _, desc := range report.Descriptions {
		attrs := []logging.Attr{
			logging.Int(logging.FieldDescriptionIndex, desc.Index),
			logging.String(logging.FieldStrategy, desc.Strategy.String()),
			logging.Int("candidate_count", desc.Candidates),
		}
		if desc.Index < len(batch.Videos) {
			video := batch.Videos[desc.Index]
			attrs = append(attrs,
				logging.String(logging.FieldVideoID, video.ID),
				logging.String(logging.FieldChannelID, video.ChannelID),
			)
		}
		logger.Debug("description extracted", logging.Args(attrs...)...)
	}
}

func (r *Runner) acquireLock() (func(), error) {
	if err := r.cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	lockPath := r.cfg.LockPath()
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrLocked, lockPath)
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release run lock",
				logging.String(logging.FieldPath, lockPath),
				logging.Error(err),
				logging.String(logging.FieldEventType, "lock_release_failed"),
				logging.String(logging.FieldErrorHint, "remove the lock file if no run is active"),
				logging.String(logging.FieldImpact, "next run may report a held lock"),
			)
		}
	}, nil
}
