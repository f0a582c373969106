package mailer

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// SendTimeout bounds a single delivery attempt.
const SendTimeout = 15 * time.Second

// Consume delivers queued jobs until msgs is closed. Malformed jobs are
// dropped; a failed send is requeued once and dropped on the second failure.
func Consume(ctx context.Context, msgs <-chan amqp.Delivery, s Sender, logger logrus.FieldLogger) {
	for msg := range msgs {
		var job EmailJob
		if err := json.Unmarshal(msg.Body, &job); err != nil {
			logger.WithError(err).Warn("bad email message")
			_ = msg.Nack(false, false)
			continue
		}

		c, cancel := context.WithTimeout(ctx, SendTimeout)
		err := Deliver(c, s, job)
		cancel()
		if err != nil {
			logger.WithError(err).WithField("template", job.Template).Warn("email delivery failed")
			_ = msg.Nack(false, !msg.Redelivered)
			continue
		}
		_ = msg.Ack(false)
	}
}
