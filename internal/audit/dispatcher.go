package audit

import (
	"go.uber.org/zap"
)

// Actions recorded for appointments.
const (
	ActionAppointmentCreated     = "appointment_created"
	ActionAppointmentRescheduled = "appointment_rescheduled"
	ActionAppointmentCancelled   = "appointment_cancelled"
	ActionAppointmentConflict    = "appointment_conflict"
)

type Event struct {
	BarbershopID uint
	ActorID      *uint
	Action       string
	Entity       string
	EntityID     *uint
	Metadata     any
}

type sink interface {
	Log(ev Event) error
}

type Dispatcher struct {
	sink  sink
	log   *zap.Logger
	queue chan Event
	done  chan struct{}
}

func NewDispatcher(logger *Logger, log *zap.Logger) *Dispatcher {
	return newDispatcher(logger, log, 100)
}

func newDispatcher(s sink, log *zap.Logger, size int) *Dispatcher {
	d := &Dispatcher{
		sink:  s,
		log:   log,
		queue: make(chan Event, size),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.sink.Log(ev); err != nil {
			d.log.Error("audit write failed", zap.String("action", ev.Action), zap.Error(err))
		}
	}
}

// Dispatch never blocks the request; a full queue drops the event.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drains the queue. Dispatch must not be called afterwards.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}
