package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/attendance-management/internal/notification"
	"github.com/frahmantamala/attendance-management/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start worker pools for various services",
	Long:  `Start and manage worker pools, currently the outbound mail dispatcher.`,
}

var mailWorkerCmd = &cobra.Command{
	Use:   "mail",
	Short: "Start the mail dispatcher worker pool",
	Long:  `Start the SMTP mail dispatcher worker pool. Useful for smoke-testing mail delivery.`,
	Run: func(cmd *cobra.Command, args []string) {
		startMailWorker()
	},
}

var (
	maxWorkers    int
	jobQueueSize  int
	testRecipient string
)

func startMailWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(os.Getenv("APP_ENV"), config.Observability.Logging.Level)
	log := logger.L()

	workers := config.SMTP.MaxWorkers
	if maxWorkers > 0 {
		workers = maxWorkers
	}
	queueSize := config.SMTP.QueueSize
	if jobQueueSize > 0 {
		queueSize = jobQueueSize
	}

	log.Info("starting mail worker",
		"max_workers", workers,
		"job_queue_size", queueSize,
		"smtp_host", config.SMTP.Host)

	mailer := notification.NewSMTPMailer(config.SMTP, log)
	dispatcher := notification.NewDispatcher(mailer, workers, queueSize, log)

	if testRecipient != "" {
		dispatcher.Enqueue(notification.Message{
			To:      testRecipient,
			Subject: "Mail dispatcher smoke test",
			Body:    "If you can read this, outbound mail is configured correctly.\n",
		})
		log.Info("test message enqueued", "to", testRecipient)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Info("mail worker is running. Press Ctrl+C to stop.")

	sig := <-sigChan
	log.Info("received signal, shutting down mail worker", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	shutdownDone := make(chan struct{})
	go func() {
		dispatcher.Shutdown()
		close(shutdownDone)
	}()

	select {
	case <-shutdownDone:
		log.Info("mail worker shutdown complete")
	case <-ctx.Done():
		log.Warn("shutdown timeout reached, forcing exit")
	}
}

func init() {
	mailWorkerCmd.Flags().IntVar(&maxWorkers, "max-workers", 0, "Maximum number of workers (overrides config)")
	mailWorkerCmd.Flags().IntVar(&jobQueueSize, "job-queue-size", 0, "Job queue buffer size (overrides config)")
	mailWorkerCmd.Flags().StringVar(&testRecipient, "test-recipient", "", "Send a test message to this address on startup")

	workerCmd.AddCommand(mailWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
