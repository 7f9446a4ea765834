package notification

import (
	"context"
	"log/slog"
	"sync"
)

// Dispatcher fans outbound mail over a bounded worker pool so a slow SMTP
// server never blocks the request path that published the event.
type Dispatcher struct {
	mailer     Mailer
	logger     *slog.Logger
	jobQueue   chan Message
	maxWorkers int
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

func NewDispatcher(mailer Mailer, maxWorkers, queueSize int, logger *slog.Logger) *Dispatcher {
	if maxWorkers <= 0 {
		maxWorkers = 4
	}
	if queueSize <= 0 {
		queueSize = 64
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		mailer:     mailer,
		logger:     logger,
		jobQueue:   make(chan Message, queueSize),
		maxWorkers: maxWorkers,
		ctx:        ctx,
		cancel:     cancel,
	}

	d.start()
	return d
}

func (d *Dispatcher) start() {
	d.once.Do(func() {
		for i := 0; i < d.maxWorkers; i++ {
			d.wg.Add(1)
			go d.worker(i)
		}
		d.logger.Info("mail dispatcher started",
			"max_workers", d.maxWorkers,
			"queue_size", cap(d.jobQueue))
	})
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()

	for {
		select {
		case msg := <-d.jobQueue:
			d.logger.Debug("worker delivering mail", "worker_id", id, "to", msg.To)
			if err := d.mailer.Send(d.ctx, msg); err != nil {
				d.logger.Error("mail delivery failed",
					"error", err,
					"worker_id", id,
					"to", msg.To,
					"subject", msg.Subject)
			}
		case <-d.ctx.Done():
			d.logger.Debug("mail worker shutting down", "worker_id", id)
			return
		}
	}
}

// Enqueue queues a message for delivery. A full queue drops the message
// rather than blocking the caller; the drop is logged.
func (d *Dispatcher) Enqueue(msg Message) {
	select {
	case d.jobQueue <- msg:
	default:
		d.logger.Error("mail queue full, dropping message", "to", msg.To, "subject", msg.Subject)
	}
}

// Shutdown stops the workers after the in-flight deliveries finish.
func (d *Dispatcher) Shutdown() {
	d.logger.Info("shutting down mail dispatcher")
	d.cancel()
	d.wg.Wait()
	d.logger.Info("mail dispatcher shutdown complete")
}
