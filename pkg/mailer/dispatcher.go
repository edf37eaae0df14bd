package mailer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
)

// Outcome tells the consumer what to do with a delivery.
type Outcome int

const (
	Ack Outcome = iota
	Requeue
	Drop
)

func (o Outcome) String() string {
	switch o {
	case Ack:
		return "ack"
	case Requeue:
		return "requeue"
	default:
		return "drop"
	}
}

// Dispatcher renders queued EmailJobs and hands them to a Sender.
type Dispatcher struct {
	Sender  Sender
	Logger  *logrus.Logger
	Timeout time.Duration
}

func NewDispatcher(sender Sender, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{Sender: sender, Logger: logger, Timeout: 15 * time.Second}
}

// Handle decodes one message body and sends it. Undecodable or unrenderable jobs are
// dropped, send failures are requeued.
func (d *Dispatcher) Handle(ctx context.Context, body []byte) Outcome {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		d.Logger.WithError(err).Warn("bad email job")
		return Drop
	}
	to := job.Recipient()
	if to == "" {
		d.Logger.Warn(ErrNoRecipient.Error())
		return Drop
	}

	subject, text, html, err := job.Content()
	if err != nil {
		d.Logger.WithError(err).WithField("template", job.Template).Warn("render failed")
		return Drop
	}

	c, cancel := context.WithTimeout(ctx, d.Timeout)
	defer cancel()
	if err := d.Sender.Send(c, to, subject, text, html); err != nil {
		d.Logger.WithError(err).WithField("to", to).Error("send failed")
		return Requeue
	}
	d.Logger.WithFields(logrus.Fields{"to": to, "template": job.Template}).Info("email sent")
	return Ack
}
