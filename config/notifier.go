package config

import (
	"log/slog"

	"github.com/iguene/Bibliovirtuelle/notify"
)

// NewNotifier publishes to RabbitMQ when AMQPURL is set and logs the notifications otherwise.
// The returned close func releases the broker connection.
func (c Config) NewNotifier(logger *slog.Logger) (notify.Notifier, func() error, error) {
	if c.AMQPURL == "" {
		return notify.NewLogNotifier(logger), func() error { return nil }, nil
	}

	publisher, err := notify.DialRabbitPublisher(c.AMQPURL, c.AMQPExchange)
	if err != nil {
		return nil, nil, err
	}

	return publisher, publisher.Close, nil
}
