package events

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/drsgate/internal/server/models"
	amqp "github.com/rabbitmq/amqp091-go"
)

// amqpChannel is the subset of *amqp.Channel the publisher uses; tests
// substitute a fake.
type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPPublisher publishes download events as JSON messages on a topic
// exchange, routed by event type.
type AMQPPublisher struct {
	ch       amqpChannel
	exchange string
}

func NewAMQPPublisher(ch amqpChannel, exchange string) (*AMQPPublisher, error) {
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("exchange declare error: %w", err)
	}
	return &AMQPPublisher{ch: ch, exchange: exchange}, nil
}

func (p *AMQPPublisher) publish(ctx context.Context, msgType string, payload any) error {
	body, err := encodeMessage(msgType, payload)
	if err != nil {
		return err
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, msgType, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish error: %w", err)
	}
	return nil
}

func (p *AMQPPublisher) DownloadServed(ctx context.Context, obj *models.DrsObject, selfURI string) error {
	return p.publish(ctx, TypeDownloadServed, FileDownloadServed{
		FileID:          obj.FileID,
		DecryptedSHA256: obj.DecryptedSHA256,
		DrsURI:          selfURI,
		Context:         "unknown",
	})
}

func (p *AMQPPublisher) UnstagedDownloadRequested(ctx context.Context, obj *models.DrsObject, selfURI string) error {
	return p.publish(ctx, TypeUnstagedDownloadRequest, NonStagedFileRequested{
		FileID:          obj.FileID,
		DecryptedSHA256: obj.DecryptedSHA256,
		DrsURI:          selfURI,
	})
}

func (p *AMQPPublisher) FileRegistered(ctx context.Context, obj *models.DrsObject, selfURI string) error {
	return p.publish(ctx, TypeFileRegistered, FileRegisteredForDownload{
		FileID:          obj.FileID,
		DecryptedSHA256: obj.DecryptedSHA256,
		UploadDate:      obj.CreationDate,
		DrsURI:          selfURI,
	})
}
