// Package app wires the services together and serializes every operation
// behind one lock, so the countdown goroutine and user commands never interleave.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"stickermissions/internal/audio"
	"stickermissions/internal/config"
	"stickermissions/internal/countdown"
	"stickermissions/internal/database"
	"stickermissions/internal/dateutil"
	"stickermissions/internal/pinpad"
	"stickermissions/internal/repository"
	"stickermissions/internal/service"
	"stickermissions/internal/store"
	"stickermissions/internal/summary"
)

var (
	ErrParentLocked   = errors.New("parent mode is locked")
	ErrNoActive       = errors.New("no active mission")
	ErrTimerRunning   = errors.New("a countdown is already running")
	ErrCannotStart    = errors.New("mission cannot be started")
	ErrPINMismatch    = errors.New("pin does not match")
	ErrPINFlowBlocked = errors.New("another pin entry is in progress")
)

const (
	summaryTimeout  = 15 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Options are the optional collaborators. Nil fields are disabled.
type Options struct {
	Speaker    *audio.Speaker
	Summarizer summary.Summarizer
	Reporter   service.MonthlyReporter
}

// App is the single entry point for the CLI
type App struct {
	mu sync.Mutex

	cfg   *config.Config
	clock dateutil.Clock
	store *store.Store

	missions *service.MissionService
	stickers *service.StickerService
	rewards  *service.RewardService
	archive  *service.ArchiveService
	presets  *service.PresetService
	profiles *service.ProfileService
	pins     *service.PINService

	pad            *pinpad.Machine
	parentUnlocked bool
	pinClear       *time.Timer
	pinClearGen    uint64
	timer          *countdown.Timer
	timerMissionID string

	speaker *audio.Speaker
	summary *summary.Cache
	wg      sync.WaitGroup
	closeDB func() error
}

// New builds an app over kv, loads persisted state and applies the daily reset
func New(cfg *config.Config, kv store.KV, clock dateutil.Clock, opts Options) (*App, error) {
	st := store.New(kv, cfg.Debug)
	if err := st.Load(clock); err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	summarizer := opts.Summarizer
	if summarizer == nil {
		summarizer = summary.NewTemplateSummarizer()
	}

	a := &App{
		cfg:      cfg,
		clock:    clock,
		store:    st,
		missions: service.NewMissionService(st, clock),
		stickers: service.NewStickerService(st, clock),
		rewards:  service.NewRewardService(st, service.NewRewardFormatter(cfg.CurrencySymbol, cfg.Locale)),
		archive:  service.NewArchiveService(st, clock, opts.Reporter),
		presets:  service.NewPresetService(st, clock),
		profiles: service.NewProfileService(st),
		pins:     service.NewPINService(st, clock, cfg.ParentTokenSecret, cfg.ParentTokenTTL),
		speaker:  opts.Speaker,
		summary:  summary.NewCache(summarizer),
	}
	a.pad = pinpad.New(a.pins)

	a.missions.DailyReset()
	return a, nil
}

// Open connects to the configured database and builds an app with the
// configured speech and email collaborators. Call Close when done.
func Open(cfg *config.Config) (*App, error) {
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	var player audio.Player
	if cfg.AudioPlayer != "" {
		player = audio.CommandPlayer{Command: cfg.AudioPlayer}
	}
	speaker := audio.NewSpeaker(audio.NewTTSService(cfg.AudioPath, cfg.TTSLang), player, cfg.Debug)

	opts := Options{Speaker: speaker}
	mailer, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.ParentEmail, cfg.Debug)
	if err != nil {
		log.Printf("Warning: monthly reports disabled: %v", err)
	} else if mailer.IsEnabled() {
		opts.Reporter = mailer
	}

	a, err := New(cfg, repository.NewKVRepository(db), dateutil.SystemClock{}, opts)
	if err != nil {
		db.Close()
		return nil, err
	}
	a.closeDB = db.Close
	return a, nil
}

// Close waits briefly for background speech, summaries and reports, then
// releases the database
func (a *App) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
	a.speaker.Wait(shutdownTimeout)
	a.archive.WaitReports(ctx)

	if a.closeDB != nil {
		return a.closeDB()
	}
	return nil
}

func (a *App) requireParent() error {
	if !a.parentUnlocked {
		return ErrParentLocked
	}
	return nil
}

// encourage speaks phrase and refreshes the monthly summary in the background
func (a *App) encourage(phrase string) {
	a.speaker.Speak(phrase)

	st := a.store.State()
	childName := st.Profile.Name
	counts := a.profiles.MonthlyCounts()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), summaryTimeout)
		defer cancel()
		if err := a.summary.Refresh(ctx, childName, counts); err != nil && a.cfg.Debug {
			log.Printf("[DEBUG] summary kept previous message: %v", err)
		}
	}()
}
