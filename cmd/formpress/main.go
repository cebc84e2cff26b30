package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formpress/internal/config"
	"github.com/goliatone/go-formpress/internal/server"
	"github.com/goliatone/go-formpress/pkg/notify"
	"github.com/goliatone/go-formpress/pkg/notify/resend"
	"github.com/goliatone/go-formpress/pkg/pipeline"
	"github.com/goliatone/go-formpress/pkg/proposal"
	"github.com/goliatone/go-formpress/pkg/render"
	"github.com/goliatone/go-formpress/pkg/renderers/vanilla"
	"github.com/goliatone/go-formpress/pkg/store"
	"github.com/goliatone/go-formpress/pkg/store/memory"
	"github.com/goliatone/go-formpress/pkg/store/surreal"

	theme "github.com/goliatone/go-theme"
)

func main() {
	boot := zerolog.New(os.Stderr)
	cfg, err := config.LoadFromFlags()
	if err != nil {
		boot.Fatal().Err(err).Msg("configuration")
	}

	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	forms, submissions, blobs, contacts, cleanup, err := buildStores(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	vanillaRenderer, err := buildRenderer(cfg)
	if err != nil {
		return err
	}

	registry := render.NewRegistry()
	registry.MustRegister(vanillaRenderer)

	renderer, err := registry.Get(cfg.Renderer)
	if err != nil {
		return err
	}

	var notifier notify.Notifier
	if cfg.ResendAPIKey != "" {
		notifier = resend.New(cfg.ResendAPIKey, cfg.EmailFrom)
	} else {
		logger.Warn().Msg("no email key configured, notifications are logged only")
		notifier = notify.NotifierFunc(func(_ context.Context, msg notify.Message) error {
			logger.Info().Str("to", msg.To).Str("subject", msg.Subject).
				Msg("notification suppressed")
			return nil
		})
	}

	pipe := pipeline.New(pipeline.Deps{
		Forms:       forms,
		Submissions: submissions,
		Blobs:       blobs,
		Contacts:    contacts,
		Notifier:    notifier,
	}, pipeline.WithLogger(logger))

	var proposer proposal.Service
	if cfg.OpenRouterAPIKey != "" {
		opts := []proposal.OpenRouterOption{proposal.WithLogger(logger)}
		if cfg.VisionModel != "" {
			opts = append(opts, proposal.WithModel(cfg.VisionModel))
		}
		proposer = proposal.NewOpenRouter(cfg.OpenRouterAPIKey, opts...)
	}

	srv := server.New(server.Options{
		Forms:       forms,
		Submissions: submissions,
		Pipeline:    pipe,
		Renderer:    renderer,
		Proposer:    proposer,
		Logger:      logger,
		BaseURL:     cfg.BaseURL,
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr()).Str("store", cfg.Store).Msg("listening")
		errCh <- httpServer.ListenAndServe()
	}()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-signalCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func buildStores(cfg *config.Config) (store.FormStore, store.SubmissionStore, store.BlobStore, store.ContactStore, func(), error) {
	switch cfg.Store {
	case config.StoreSurreal:
		s, err := surreal.Connect(surreal.Config{
			URL:       cfg.SurrealURL,
			Namespace: cfg.SurrealNS,
			Database:  cfg.SurrealDB,
			Username:  cfg.SurrealUser,
			Password:  cfg.SurrealPass,
		})
		if err != nil {
			return nil, nil, nil, nil, nil, err
		}
		// Blob storage has no SurrealDB backing; documents stay in memory
		// until an object store adapter is configured.
		mem := memory.New()
		return s, s, mem, s, s.Close, nil
	default:
		mem := memory.New()
		return mem, mem, mem, mem, func() {}, nil
	}
}

func buildRenderer(cfg *config.Config) (*vanilla.Renderer, error) {
	if cfg.Theme == "" {
		return vanilla.New()
	}
	return vanilla.New(vanilla.WithTheme(&theme.RendererConfig{
		Theme:   cfg.Theme,
		Variant: cfg.ThemeVariant,
	}))
}
