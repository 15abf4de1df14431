package events

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/drsgate/internal/logging"
	"github.com/dmitrijs2005/drsgate/internal/server/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistrar struct {
	registered []*models.FileToRegister
	err        error
}

func (f *fakeRegistrar) RegisterNewFile(ctx context.Context, file *models.FileToRegister) (*models.DrsObject, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.registered = append(f.registered, file)
	return &models.DrsObject{ID: "drs-1", FileID: file.FileID}, nil
}

type fakeAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return f.Nack(tag, false, requeue)
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1})))
}

func newTestSubscriber(reg FileRegistrar) *AMQPSubscriber {
	return NewAMQPSubscriber(nil, "file_registrations", "file_downloads", reg, testLogger())
}

func registrationDelivery(t *testing.T, ack amqp.Acknowledger) amqp.Delivery {
	t.Helper()
	body, err := encodeMessage(TypeFileInternallyRegistered, FileInternallyRegistered{
		FileID:             "file-1",
		DecryptedSHA256:    "abc123",
		DecryptedSize:      100,
		DecryptionSecretID: "sec-1",
		UploadDate:         time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: ack, Body: body}
}

func TestHandle_RegistersAndAcks(t *testing.T) {
	reg := &fakeRegistrar{}
	sub := newTestSubscriber(reg)
	ack := &fakeAcknowledger{}

	sub.handle(context.Background(), registrationDelivery(t, ack))

	require.Len(t, reg.registered, 1)
	assert.Equal(t, "file-1", reg.registered[0].FileID)
	assert.Equal(t, "sec-1", reg.registered[0].DecryptionSecretID)
	assert.True(t, ack.acked)
}

func TestHandle_MalformedMessage_DroppedWithoutRequeue(t *testing.T) {
	reg := &fakeRegistrar{}
	sub := newTestSubscriber(reg)
	ack := &fakeAcknowledger{}

	sub.handle(context.Background(), amqp.Delivery{Acknowledger: ack, Body: []byte("garbage")})

	assert.Empty(t, reg.registered)
	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue)
}

func TestHandle_RegistrarError_Requeued(t *testing.T) {
	reg := &fakeRegistrar{err: errors.New("db down")}
	sub := newTestSubscriber(reg)
	ack := &fakeAcknowledger{}

	sub.handle(context.Background(), registrationDelivery(t, ack))

	assert.True(t, ack.nacked)
	assert.True(t, ack.requeue)
}
