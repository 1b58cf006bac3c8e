package notify

import (
	"context"
	"errors"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	ErrConnectingToBrokerFailed = errors.New("connecting to message broker failed")
	ErrPublishingFailed         = errors.New("publishing notification failed")
	ErrEmptyExchangeName        = errors.New("exchange name must not be empty")
)

// publishChannel is the part of *amqp.Channel the publisher uses.
type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitPublisher publishes ReservationReady messages as persistent JSON to a durable topic exchange.
type RabbitPublisher struct {
	conn     *amqp.Connection
	channel  publishChannel
	exchange string
}

// DialRabbitPublisher connects to url and declares exchange.
func DialRabbitPublisher(url, exchange string) (*RabbitPublisher, error) {
	if exchange == "" {
		return nil, ErrEmptyExchangeName
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Join(ErrConnectingToBrokerFailed, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Join(ErrConnectingToBrokerFailed, err)
	}

	if err = ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()

		return nil, errors.Join(ErrConnectingToBrokerFailed, err)
	}

	return &RabbitPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// NewRabbitPublisherWithChannel builds a publisher on an already open channel.
func NewRabbitPublisherWithChannel(channel publishChannel, exchange string) (*RabbitPublisher, error) {
	if exchange == "" {
		return nil, ErrEmptyExchangeName
	}

	return &RabbitPublisher{channel: channel, exchange: exchange}, nil
}

// NotifyReservationReady publishes message with routing key RoutingKeyReservationReady.
func (p *RabbitPublisher) NotifyReservationReady(ctx context.Context, message ReservationReady) error {
	body, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(message)
	if err != nil {
		return errors.Join(ErrPublishingFailed, err)
	}

	err = p.channel.PublishWithContext(ctx, p.exchange, RoutingKeyReservationReady, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    message.NotifiedAt,
		Type:         RoutingKeyReservationReady,
		Body:         body,
	})
	if err != nil {
		return errors.Join(ErrPublishingFailed, err)
	}

	return nil
}

// Close closes the channel and, if the publisher dialed it, the connection.
func (p *RabbitPublisher) Close() error {
	var errs []error

	if p.channel != nil {
		errs = append(errs, p.channel.Close())
	}

	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}

	return errors.Join(errs...)
}
