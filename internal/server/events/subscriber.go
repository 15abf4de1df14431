package events

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/drsgate/internal/logging"
	"github.com/dmitrijs2005/drsgate/internal/server/models"
	amqp "github.com/rabbitmq/amqp091-go"
)

// FileRegistrar registers files announced on the bus as DRS objects.
// Implemented by the services layer.
type FileRegistrar interface {
	RegisterNewFile(ctx context.Context, file *models.FileToRegister) (*models.DrsObject, error)
}

// amqpConsumer is the subset of *amqp.Channel the subscriber uses.
type amqpConsumer interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// AMQPSubscriber consumes file-registration messages and feeds them to the
// registrar. Deliveries arrive at-least-once in whatever order the broker
// provides.
type AMQPSubscriber struct {
	ch        amqpConsumer
	queue     string
	exchange  string
	registrar FileRegistrar
	logger    logging.Logger
}

func NewAMQPSubscriber(ch amqpConsumer, queue, exchange string, registrar FileRegistrar, logger logging.Logger) *AMQPSubscriber {
	return &AMQPSubscriber{ch: ch, queue: queue, exchange: exchange, registrar: registrar, logger: logger}
}

// Run declares and binds the registration queue, then consumes until the
// context is cancelled or the delivery channel closes.
func (s *AMQPSubscriber) Run(ctx context.Context) error {

	q, err := s.ch.QueueDeclare(s.queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue declare error: %w", err)
	}

	if err := s.ch.QueueBind(q.Name, TypeFileInternallyRegistered, s.exchange, false, nil); err != nil {
		return fmt.Errorf("queue bind error: %w", err)
	}

	deliveries, err := s.ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume error: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			s.handle(ctx, d)
		}
	}
}

func (s *AMQPSubscriber) handle(ctx context.Context, d amqp.Delivery) {

	payload, err := DecodeRegistration(d.Body)
	if err != nil {
		// Malformed or unexpected message type: drop without requeue, a
		// redelivery would fail the same way.
		s.logger.Error(ctx, "registration message rejected", "error", err.Error())
		_ = d.Nack(false, false)
		return
	}

	file := &models.FileToRegister{
		FileID:             payload.FileID,
		DecryptedSHA256:    payload.DecryptedSHA256,
		DecryptedSize:      payload.DecryptedSize,
		DecryptionSecretID: payload.DecryptionSecretID,
		CreationDate:       payload.UploadDate,
	}

	if _, err := s.registrar.RegisterNewFile(ctx, file); err != nil {
		s.logger.Error(ctx, "file registration failed", "file_id", payload.FileID, "error", err.Error())
		_ = d.Nack(false, true)
		return
	}

	_ = d.Ack(false)
}
