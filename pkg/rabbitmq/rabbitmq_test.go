package rabbitmq

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"inventory/internal/models"

	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	a := m.Called(name, durable)
	return amqp.Queue{Name: name}, a.Error(0)
}

func (m *mockChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	a := m.Called(exchange, key, msg)
	return a.Error(0)
}

func (m *mockChannel) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	a := m.Called(queue, autoAck)
	if a.Get(0) == nil {
		return nil, a.Error(1)
	}
	return a.Get(0).(<-chan amqp.Delivery), a.Error(1)
}

func (m *mockChannel) Close() error {
	return m.Called().Error(0)
}

// ackRecorder implements amqp.Acknowledger.
type ackRecorder struct {
	acks  chan uint64
	nacks chan bool // requeue flag
}

func newAckRecorder() *ackRecorder {
	return &ackRecorder{acks: make(chan uint64, 1), nacks: make(chan bool, 1)}
}

func (a *ackRecorder) Ack(tag uint64, multiple bool) error {
	a.acks <- tag
	return nil
}

func (a *ackRecorder) Nack(tag uint64, multiple, requeue bool) error {
	a.nacks <- requeue
	return nil
}

func (a *ackRecorder) Reject(tag uint64, requeue bool) error {
	a.nacks <- requeue
	return nil
}

func newTestClient(t *testing.T) (*Client, *mockChannel) {
	t.Helper()
	ch := new(mockChannel)
	ch.On("QueueDeclare", ProductEventsQueue, true).Return(nil).Once()
	client, err := newClient(nil, ch)
	require.NoError(t, err)
	return client, ch
}

func TestNewClientDeclareFailure(t *testing.T) {
	ch := new(mockChannel)
	ch.On("QueueDeclare", ProductEventsQueue, true).Return(errors.New("access refused")).Once()

	_, err := newClient(nil, ch)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to declare product_events")
}

func TestPublishProductChanged(t *testing.T) {
	client, ch := newTestClient(t)

	quantity := 4
	event := models.ProductEvent{ID: "evt-1", Action: models.ActionSold, ProductID: 3, Quantity: &quantity}
	ch.On("Publish", "", ProductEventsQueue, mock.MatchedBy(func(msg amqp.Publishing) bool {
		var decoded models.ProductEvent
		if err := json.Unmarshal(msg.Body, &decoded); err != nil {
			return false
		}
		return msg.MessageId == "evt-1" &&
			msg.Type == models.ActionSold &&
			msg.DeliveryMode == amqp.Persistent &&
			decoded.ProductID == 3 && decoded.Quantity != nil && *decoded.Quantity == 4
	})).Return(nil).Once()

	assert.NoError(t, client.PublishProductChanged(event))

	ch.On("Publish", "", ProductEventsQueue, mock.Anything).Return(errors.New("channel closed")).Once()
	err := client.PublishProductChanged(event)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish message")

	ch.AssertExpectations(t)
}

func TestConsumeProductEvents(t *testing.T) {
	client, ch := newTestClient(t)

	deliveries := make(chan amqp.Delivery, 3)
	ch.On("Consume", ProductEventsQueue, false).Return((<-chan amqp.Delivery)(deliveries), nil).Once()

	received := make(chan models.ProductEvent, 1)
	handler := func(event models.ProductEvent) error {
		if event.Action == "boom" {
			return errors.New("handler failed")
		}
		received <- event
		return nil
	}
	require.NoError(t, client.ConsumeProductEvents(handler))

	ok := newAckRecorder()
	body, _ := json.Marshal(models.ProductEvent{ID: "evt-2", Action: models.ActionDeleted, ProductID: 9})
	deliveries <- amqp.Delivery{Acknowledger: ok, DeliveryTag: 1, Body: body}

	select {
	case event := <-received:
		assert.Equal(t, uint(9), event.ProductID)
	case <-time.After(time.Second):
		t.Fatal("handler was not called")
	}
	select {
	case tag := <-ok.acks:
		assert.Equal(t, uint64(1), tag)
	case <-time.After(time.Second):
		t.Fatal("message was not acked")
	}

	failing := newAckRecorder()
	body, _ = json.Marshal(models.ProductEvent{ID: "evt-3", Action: "boom"})
	deliveries <- amqp.Delivery{Acknowledger: failing, DeliveryTag: 2, Body: body}
	select {
	case requeue := <-failing.nacks:
		assert.True(t, requeue)
	case <-time.After(time.Second):
		t.Fatal("failed message was not nacked")
	}

	malformed := newAckRecorder()
	deliveries <- amqp.Delivery{Acknowledger: malformed, DeliveryTag: 3, Body: []byte("{not json")}
	select {
	case requeue := <-malformed.nacks:
		assert.False(t, requeue)
	case <-time.After(time.Second):
		t.Fatal("malformed message was not dropped")
	}

	close(deliveries)
	ch.AssertExpectations(t)
}

func TestClose(t *testing.T) {
	client, ch := newTestClient(t)
	ch.On("Close").Return(errors.New("already closed")).Once()

	err := client.Close()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to close channel")
}
