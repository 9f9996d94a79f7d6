package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"resume-screener/domain"
	"resume-screener/infrastructure"
)

var rootCmd = &cobra.Command{
	Use:           "resume-screener",
	Short:         "Applicant tracking service with LLM resume screening",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.AddCommand(serveCmd, migrateCmd, eventsCmd)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and the logger shared by every command.
func bootstrap() (*infrastructure.Config, *logrus.Logger, error) {
	cfg, err := infrastructure.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, infrastructure.NewLogger(cfg.LogLevel, cfg.LogFormat), nil
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the jobs and applications tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		db, err := infrastructure.NewDatabase(cfg.DBDriver, cfg.DBDSN, log)
		if err != nil {
			return err
		}
		if err := infrastructure.Migrate(db); err != nil {
			return err
		}
		log.WithField("driver", cfg.DBDriver).Info("migration complete")
		return nil
	},
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Tail application.analyzed events from RabbitMQ",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		if cfg.RabbitMQURL == "" {
			return fmt.Errorf("RABBITMQ_URL is not set")
		}
		rmq, err := infrastructure.NewRabbitMQ(cfg.RabbitMQURL, cfg.RabbitMQQueue, log)
		if err != nil {
			return err
		}
		defer rmq.Close()

		log.WithField("queue", cfg.RabbitMQQueue).Info("waiting for events")
		return rmq.ConsumeAnalyzed(cmd.Context(), func(ev domain.ApplicationAnalyzed) {
			log.WithFields(logrus.Fields{
				"application_id": ev.ApplicationID,
				"job_id":         ev.JobID,
				"candidate":      ev.FullName,
				"score":          ev.Score,
				"verdict":        ev.Verdict,
			}).Info("application analyzed")
		})
	},
}
