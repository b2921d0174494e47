// Package queue decouples side-channel notifications from the request path.
package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/AYUSHMAAN1812/chatify/internal/core/ports"
)

const (
	defaultWorkers = 2
	channelBuffer  = 256
)

// WelcomeJob is a queued welcome email.
type WelcomeJob struct {
	Email string
	Name  string
}

// Dispatcher delivers welcome emails on background workers. Enqueue never
// blocks the signup path: when the buffer is full the job is dropped and
// logged, which is acceptable for a courtesy email.
type Dispatcher struct {
	jobs    chan WelcomeJob
	mailer  ports.WelcomeMailer
	workers int
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers background workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.WelcomeMailer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &Dispatcher{
		jobs:    make(chan WelcomeJob, channelBuffer),
		mailer:  mailer,
		workers: numWorkers,
		log:     log,
	}
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		go d.runWorker(ctx, i)
	}
}

// Enqueue implements ports.WelcomeNotifier.
func (d *Dispatcher) Enqueue(email, name string) {
	select {
	case d.jobs <- WelcomeJob{Email: email, Name: name}:
	default:
		d.log.Warn().Str("email", email).Msg("welcome queue full, dropping email")
	}
}

func (d *Dispatcher) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-d.jobs:
			if !ok {
				return
			}
			if err := d.mailer.SendWelcome(ctx, job.Email, job.Name); err != nil {
				d.log.Error().Err(err).
					Str("email", job.Email).
					Int("worker_id", id).
					Msg("welcome email failed")
			}
		}
	}
}
