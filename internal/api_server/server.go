package apiserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/talentwire/intake-api/internal/artifact"
	"github.com/talentwire/intake-api/internal/config"
	"github.com/talentwire/intake-api/internal/events"
	"github.com/talentwire/intake-api/internal/extraction"
	handlers "github.com/talentwire/intake-api/internal/handlers/v1"
	"github.com/talentwire/intake-api/internal/scoring"
	"github.com/talentwire/intake-api/internal/service"
	"github.com/talentwire/intake-api/internal/store"
	"github.com/talentwire/intake-api/internal/tasks"
	"github.com/talentwire/intake-api/pkg/metrics"
	"github.com/talentwire/intake-api/pkg/middleware"
	"go.uber.org/zap"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg      *config.Config
	store    store.Store
	listener net.Listener
}

// New returns a new instance of the intake API server.
func New(
	cfg *config.Config,
	store store.Store,
	listener net.Listener,
) *Server {
	return &Server{
		cfg:      cfg,
		store:    store,
		listener: listener,
	}
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	artifacts, err := s.newArtifactStore()
	if err != nil {
		return fmt.Errorf("failed to initialize artifact store: %w", err)
	}

	engine := scoring.NewEngine(scoring.Config{
		HighPriorityWeight: s.cfg.Scoring.HighPriorityWeight,
		NormalWeight:       s.cfg.Scoring.NormalWeight,
		ShortlistThreshold: s.cfg.Scoring.ShortlistThreshold,
		ReviewThreshold:    s.cfg.Scoring.ReviewThreshold,
	})
	extractor := extraction.NewArtifactExtractor(artifacts)

	eventProducer := events.NewEventProducer(&events.StdoutWriter{})
	defer func() {
		_ = eventProducer.Close()
	}()

	evaluationService := service.NewEvaluationService(s.store, extractor, engine, eventProducer)

	queue := tasks.NewQueue(evaluationService,
		tasks.WithWorkers(s.cfg.Service.ScoringWorkers),
		tasks.WithTaskTimeout(s.cfg.Service.StageTimeout),
	)
	queue.Start(ctx)
	defer queue.Close()

	intakeService := service.NewIntakeService(s.store, artifacts, queue, eventProducer, s.cfg.Service.StageTimeout)

	// pick up evaluations a previous run left behind
	if n, err := evaluationService.ResumePending(ctx, queue); err != nil {
		zap.S().Named("api_server").Errorf("failed to resume pending evaluations: %v", err)
	} else if n > 0 {
		zap.S().Named("api_server").Infof("requeued %d pending evaluations", n)
	}

	if fsStore, ok := artifacts.(*artifact.FileStore); ok {
		sweeper := artifact.NewSweeper(s.store, fsStore, s.cfg.Artifact.SweepInterval)
		go sweeper.Run(ctx)
	}

	router := chi.NewRouter()

	metricMiddleware := metrics.NewMiddleware("api_server")
	metricMiddleware.MustRegisterDefault()
	metrics.MustRegisterIntakeCollectors()

	router.Use(
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins:   []string{s.cfg.Service.BaseUrl},
			AllowedMethods:   []string{"GET", "PUT", "POST", "DELETE", "HEAD", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
		middleware.RequestID,
		middleware.Logger(),
		chiMiddleware.Recoverer,
	)

	h := handlers.NewHandler(
		intakeService,
		evaluationService,
		service.NewJobService(s.store),
		service.NewApplicantService(s.store),
	)
	router.Route("/api/v1", h.Routes)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", metrics.Handler())

	srv := http.Server{Addr: s.cfg.Service.Address, Handler: router}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) newArtifactStore() (artifact.Store, error) {
	switch s.cfg.Artifact.Backend {
	case "s3":
		return artifact.NewMinioStore(
			artifact.WithEndpoint(s.cfg.Artifact.S3Endpoint),
			artifact.WithBucket(s.cfg.Artifact.S3Bucket),
			artifact.WithAccessKey(s.cfg.Artifact.S3AccessKey),
			artifact.WithSecretKey(s.cfg.Artifact.S3SecretKey),
			artifact.WithSSL(s.cfg.Artifact.S3UseSSL),
		)
	default:
		return artifact.NewFileStore(s.cfg.Artifact.RootDir)
	}
}
