package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
	fail   bool
	closed bool
	block  chan struct{}
}

func (s *memorySink) Name() string { return "memory" }

func (s *memorySink) Deliver(_ context.Context, e Event) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	if s.fail {
		return errors.New("sink down")
	}
	return nil
}

func (s *memorySink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *memorySink) received() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

func TestDispatcher_DeliversToEverySink(t *testing.T) {
	good := &memorySink{}
	broken := &memorySink{fail: true}
	d := NewDispatcher(8, broken, good)
	d.Start(context.Background())

	d.Publish(NewEvent(KindOrderCreated, SeverityInfo, "Nuevo pedido", nil))
	d.Publish(NewEvent(KindSaleCompleted, SeveritySuccess, "Venta registrada", map[string]interface{}{"total": "37000"}))
	d.Close()

	got := good.received()
	if len(got) != 2 || got[0].Kind != KindOrderCreated || got[1].Kind != KindSaleCompleted {
		t.Fatalf("delivered = %+v", got)
	}
	if len(broken.received()) != 2 {
		t.Errorf("a failing sink should still be offered every event")
	}
	if !good.closed || !broken.closed {
		t.Error("Close() did not close the sinks")
	}

	// Publishing after Close is a no-op.
	d.Publish(NewEvent(KindLowStock, SeverityWarning, "late", nil))
	if len(good.received()) != 2 {
		t.Error("event accepted after Close()")
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	sink := &memorySink{block: make(chan struct{})}
	d := NewDispatcher(1, sink)

	// Not started yet, so the single slot fills and the rest are dropped without blocking.
	for i := 0; i < 5; i++ {
		d.Publish(NewEvent(KindStockAdjusted, SeverityInfo, "adjusted", nil))
	}
	close(sink.block)
	d.Start(context.Background())
	d.Close()

	if got := len(sink.received()); got != 1 {
		t.Errorf("delivered %d events, want 1", got)
	}
}

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaSink(t *testing.T) {
	w := &fakeWriter{}
	sink := NewKafkaSinkWithWriter(w)
	event := NewEvent(KindOrderReady, SeverityInfo, "Pedido listo", map[string]interface{}{"order_id": "o1"})

	if err := sink.Deliver(context.Background(), event); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("messages = %d, want 1", len(w.msgs))
	}
	msg := w.msgs[0]
	if string(msg.Key) != string(KindOrderReady) {
		t.Errorf("key = %s", msg.Key)
	}
	var decoded Event
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("message value is not an event: %v", err)
	}
	if decoded.ID != event.ID || decoded.Payload["order_id"] != "o1" {
		t.Errorf("decoded = %+v", decoded)
	}
	if len(msg.Headers) != 2 || msg.Headers[0].Key != "event_id" || string(msg.Headers[0].Value) != event.ID {
		t.Errorf("headers = %+v", msg.Headers)
	}

	w.err = errors.New("broker unavailable")
	if err := sink.Deliver(context.Background(), event); !errors.Is(err, w.err) {
		t.Errorf("Deliver() error = %v, want wrapped writer error", err)
	}
	if err := sink.Close(); err != nil || !w.closed {
		t.Errorf("Close() = %v, closed = %v", err, w.closed)
	}
}

func TestKafkaWriter_KeepsKindsOrdered(t *testing.T) {
	w := newKafkaWriter([]string{"k1:9092", "k2:9092"}, "loco-alitas.kitchen")
	if _, ok := w.Balancer.(*kafka.Hash); !ok {
		t.Errorf("balancer = %T, want *kafka.Hash", w.Balancer)
	}
	if w.Topic != "loco-alitas.kitchen" || w.Addr.String() != "k1:9092,k2:9092" {
		t.Errorf("writer topic = %s, addr = %s", w.Topic, w.Addr)
	}
}

func TestNewPublishing(t *testing.T) {
	event := NewEvent(KindLowStock, SeverityWarning, "Stock bajo", nil)
	pub := newPublishing(event, []byte(`{}`))

	if pub.DeliveryMode != amqp.Persistent {
		t.Errorf("delivery mode = %d, want persistent", pub.DeliveryMode)
	}
	if pub.MessageId != event.ID || pub.Type != string(KindLowStock) || pub.ContentType != "application/json" {
		t.Errorf("publishing = %+v", pub)
	}
}

func TestLogSink(t *testing.T) {
	var s LogSink
	for _, sev := range []Severity{SeverityInfo, SeverityWarning, SeverityError} {
		if err := s.Deliver(context.Background(), NewEvent(KindLowStock, sev, "msg", map[string]interface{}{"k": 1})); err != nil {
			t.Errorf("Deliver(%s) error = %v", sev, err)
		}
	}
}
