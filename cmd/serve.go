package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"resume-screener/domain"
	"resume-screener/infrastructure"
	"resume-screener/interfaces"
	"resume-screener/usecase"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	if log.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := infrastructure.SetPDFLicense(cfg.UniPDFLicense); err != nil {
		log.WithError(err).Warn("unipdf license not applied, falling back to plain PDF reader")
	}

	db, err := infrastructure.NewDatabase(cfg.DBDriver, cfg.DBDSN, log)
	if err != nil {
		return err
	}
	if err := infrastructure.Migrate(db); err != nil {
		return err
	}
	repo := infrastructure.NewRepository(db)

	storage, err := infrastructure.NewObjectStorage(ctx, cfg)
	if err != nil {
		return err
	}
	extractor := infrastructure.NewExtractor(&http.Client{Timeout: cfg.FetchTimeout}, storage, log)

	llm, err := infrastructure.NewCompleter(ctx, cfg)
	switch {
	case errors.Is(err, domain.ErrLLMCredentialMissing):
		log.WithField("provider", cfg.LLMProvider).Warn("no LLM credential configured, analysis requests will fail")
		llm = nil
	case err != nil:
		return err
	}
	if c, ok := llm.(io.Closer); ok {
		defer c.Close()
	}

	prompt, err := infrastructure.LoadPrompt(cfg.LLMPromptFile)
	if err != nil {
		return err
	}

	screening := &usecase.Screening{
		Jobs:         repo,
		Applications: repo,
		Files:        storage,
		Extractor:    extractor,
		Analyzer:     infrastructure.NewAnalyzer(llm, prompt, log),
		ResumeBucket: cfg.ResumeBucket,
		Log:          log,
	}
	if cfg.RabbitMQURL != "" {
		rmq, err := infrastructure.NewRabbitMQ(cfg.RabbitMQURL, cfg.RabbitMQQueue, log)
		if err != nil {
			return err
		}
		defer rmq.Close()
		screening.Events = rmq
	}

	admin := &usecase.Admin{
		Jobs:         repo,
		Applications: repo,
		Files:        storage,
		Sessions:     infrastructure.NewSessionStore(cfg.AdminSessionTTL),
		Username:     cfg.AdminUsername,
		Password:     cfg.AdminPassword,
		JDBucket:     cfg.JDBucket,
		Log:          log,
	}

	router := interfaces.NewRouter(log, cfg.CORSOrigins)
	interfaces.NewHTTPHandler(router, screening, admin, log)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
