package audit

import (
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
	fail   bool
}

func (s *memorySink) Log(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("db down")
	}
	s.events = append(s.events, ev)
	return nil
}

func TestDispatcher_DeliversInOrder(t *testing.T) {
	s := &memorySink{}
	d := newDispatcher(s, zap.NewNop(), 10)

	d.Dispatch(Event{Action: ActionAppointmentCreated})
	d.Dispatch(Event{Action: ActionAppointmentCancelled})
	d.Close()

	if len(s.events) != 2 || s.events[1].Action != ActionAppointmentCancelled {
		t.Fatalf("unexpected events %+v", s.events)
	}
}

func TestDispatcher_SinkErrorsDoNotStopWorker(t *testing.T) {
	s := &memorySink{fail: true}
	d := newDispatcher(s, zap.NewNop(), 10)

	d.Dispatch(Event{Action: ActionAppointmentConflict})
	d.Dispatch(Event{Action: ActionAppointmentConflict})
	d.Close()

	if len(s.events) != 0 {
		t.Fatal("failing sink should record nothing")
	}
}
