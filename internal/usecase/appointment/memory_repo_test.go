package appointment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// memRepo is an in-memory domain.Repository. WithinTx runs one transaction
// at a time and rolls appointments, clients and outbox back on error.
type memRepo struct {
	txMu sync.Mutex
	mu   sync.Mutex

	shops     map[uint]models.Barbershop
	hours     map[[2]uint]models.BusinessHours
	schedules map[[2]uint]models.BarberSchedule
	barbers   map[uint]models.Barber
	services  map[uint]models.Service
	clients   map[uint]models.Client
	appts     map[uint]models.Appointment
	outbox    []models.OutboxEvent
	nextID    uint

	failLedger bool
}

func newMemRepo() *memRepo {
	return &memRepo{
		shops:     map[uint]models.Barbershop{},
		hours:     map[[2]uint]models.BusinessHours{},
		schedules: map[[2]uint]models.BarberSchedule{},
		barbers:   map[uint]models.Barber{},
		services:  map[uint]models.Service{},
		clients:   map[uint]models.Client{},
		appts:     map[uint]models.Appointment{},
		nextID:    100,
	}
}

func (m *memRepo) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memRepo) WithinTx(ctx context.Context, fn func(tx domain.Repository) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	appts := make(map[uint]models.Appointment, len(m.appts))
	for k, v := range m.appts {
		appts[k] = v
	}
	clients := make(map[uint]models.Client, len(m.clients))
	for k, v := range m.clients {
		clients[k] = v
	}
	outbox := append([]models.OutboxEvent(nil), m.outbox...)
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.appts, m.clients, m.outbox = appts, clients, outbox
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *memRepo) GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.shops[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return &s, nil
}

func (m *memRepo) GetBarbershopBySlug(ctx context.Context, slug string) (*models.Barbershop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.shops {
		if s.Slug == slug {
			return &s, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (m *memRepo) GetBusinessHours(ctx context.Context, barbershopID uint, weekday int) (*models.BusinessHours, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hours[[2]uint{barbershopID, uint(weekday)}]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (m *memRepo) GetBarberSchedule(ctx context.Context, barberID uint, weekday int) (*models.BarberSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.schedules[[2]uint{barberID, uint(weekday)}]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memRepo) GetBarber(ctx context.Context, barbershopID, barberID uint) (*models.Barber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.barbers[barberID]
	if !ok || b.BarbershopID != barbershopID {
		return nil, domain.ErrRecordNotFound
	}
	return &b, nil
}

func (m *memRepo) ListActiveBarbers(ctx context.Context, barbershopID uint) ([]models.Barber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Barber
	for id := uint(1); id <= uint(len(m.barbers))+10; id++ {
		if b, ok := m.barbers[id]; ok && b.Active && b.BarbershopID == barbershopID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memRepo) GetService(ctx context.Context, barbershopID, serviceID uint) (*models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.services[serviceID]
	if !ok || s.BarbershopID != barbershopID {
		return nil, domain.ErrRecordNotFound
	}
	return &s, nil
}

func (m *memRepo) ListActiveServices(ctx context.Context, barbershopID uint) ([]models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Service
	for id := uint(1); id <= uint(len(m.services))+10; id++ {
		if s, ok := m.services[id]; ok && s.Active && s.BarbershopID == barbershopID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memRepo) GetClient(ctx context.Context, barbershopID, clientID uint) (*models.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clients[clientID]
	if !ok || c.BarbershopID != barbershopID {
		return nil, domain.ErrRecordNotFound
	}
	return &c, nil
}

func (m *memRepo) GetOrCreateClient(ctx context.Context, barbershopID uint, name, phone, email string) (*models.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.clients {
		if c.BarbershopID == barbershopID && c.Phone == phone {
			return &c, nil
		}
	}
	c := models.Client{ID: m.id(), BarbershopID: barbershopID, Name: name, Phone: phone, Email: email}
	m.clients[c.ID] = c
	return &c, nil
}

func (m *memRepo) ListActiveAppointments(ctx context.Context, barberID uint, from, to time.Time) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failLedger {
		return nil, errors.New("ledger unavailable")
	}
	var out []models.Appointment
	for _, ap := range m.appts {
		if ap.BarberID == barberID && domain.Status(ap.Status).IsActive() &&
			ap.StartAt.Before(to) && ap.EndAt.After(from) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (m *memRepo) ListAppointmentsForPeriod(ctx context.Context, barbershopID, barberID uint, from, to time.Time) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, ap := range m.appts {
		if ap.BarbershopID != barbershopID || (barberID != 0 && ap.BarberID != barberID) {
			continue
		}
		if !ap.StartAt.Before(from) && ap.StartAt.Before(to) {
			ap.Client = m.clients[ap.ClientID]
			ap.Service = m.services[ap.ServiceID]
			ap.Barber = m.barbers[ap.BarberID]
			out = append(out, ap)
		}
	}
	return out, nil
}

func (m *memRepo) GetAppointment(ctx context.Context, barbershopID, appointmentID uint) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ap, ok := m.appts[appointmentID]
	if !ok || ap.BarbershopID != barbershopID {
		return nil, domain.ErrRecordNotFound
	}
	return &ap, nil
}

func (m *memRepo) LockBarber(ctx context.Context, barberID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.barbers[barberID]; !ok {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (m *memRepo) GetAppointmentForUpdate(ctx context.Context, barbershopID, appointmentID uint) (*models.Appointment, error) {
	return m.GetAppointment(ctx, barbershopID, appointmentID)
}

func (m *memRepo) HasTimeConflict(ctx context.Context, barberID uint, start, end time.Time, excludeID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ap := range m.appts {
		if ap.ID == excludeID || ap.BarberID != barberID || !domain.Status(ap.Status).IsActive() {
			continue
		}
		if ap.StartAt.Before(end) && ap.EndAt.After(start) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ap.ID = m.id()
	m.appts[ap.ID] = *ap
	return nil
}

func (m *memRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.appts[ap.ID]; !ok {
		return domain.ErrRecordNotFound
	}
	m.appts[ap.ID] = *ap
	return nil
}

func (m *memRepo) InsertOutboxEvent(ctx context.Context, ev *models.OutboxEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev.ID = m.id()
	m.outbox = append(m.outbox, *ev)
	return nil
}

func (m *memRepo) eventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.outbox))
	for _, ev := range m.outbox {
		out = append(out, ev.EventType)
	}
	return out
}

// recordingAuditor keeps dispatched actions.
type recordingAuditor struct {
	mu      sync.Mutex
	actions []string
}

func (a *recordingAuditor) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, ev.Action)
}

func (a *recordingAuditor) count(action string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, x := range a.actions {
		if x == action {
			n++
		}
	}
	return n
}

// memCache is an in-memory domain.OccupancyCache recording invalidations.
type memCache struct {
	mu          sync.Mutex
	entries     map[string][]domain.BookedInterval
	gens        map[string]int64
	invalidated []string
}

func newMemCache() *memCache {
	return &memCache{
		entries: map[string][]domain.BookedInterval{},
		gens:    map[string]int64{},
	}
}

func cacheKey(barberID uint, date string) string {
	return fmt.Sprintf("%d:%s", barberID, date)
}

func (c *memCache) Get(ctx context.Context, barberID uint, date string) ([]domain.BookedInterval, int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey(barberID, date)
	v, ok := c.entries[key]
	return v, c.gens[key], ok
}

func (c *memCache) Set(ctx context.Context, barberID uint, date string, gen int64, booked []domain.BookedInterval) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey(barberID, date)
	if c.gens[key] != gen {
		return
	}
	c.entries[key] = booked
}

func (c *memCache) Invalidate(ctx context.Context, barberID uint, dates ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range dates {
		key := cacheKey(barberID, d)
		delete(c.entries, key)
		c.gens[key]++
		c.invalidated = append(c.invalidated, d)
	}
}
