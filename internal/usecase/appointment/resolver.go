package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/telemetry"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

var tracer = otel.Tracer(telemetry.TracerName)

// Auditor receives audit events; *audit.Dispatcher implements it.
type Auditor interface {
	Dispatch(ev audit.Event)
}

type noopAuditor struct{}

func (noopAuditor) Dispatch(audit.Event) {}

type noopCache struct{}

func (noopCache) Get(context.Context, uint, string) ([]domain.BookedInterval, int64, bool) {
	return nil, 0, false
}
func (noopCache) Set(context.Context, uint, string, int64, []domain.BookedInterval) {}
func (noopCache) Invalidate(context.Context, uint, ...string) {}

// Resolver is the single availability algorithm shared by the client and
// owner flows, and the conflict guard used by every write.
type Resolver struct {
	repo  domain.Repository
	cache domain.OccupancyCache
	now   func() time.Time
}

// NewResolver wires the resolver. A nil cache disables caching and a nil
// clock uses time.Now.
func NewResolver(repo domain.Repository, cache domain.OccupancyCache, now func() time.Time) *Resolver {
	if cache == nil {
		cache = noopCache{}
	}
	if now == nil {
		now = time.Now
	}
	return &Resolver{repo: repo, cache: cache, now: now}
}

// shopDay is one local calendar day of one barbershop.
type shopDay struct {
	shop    *models.Barbershop
	loc     *time.Location
	date    time.Time // local midnight
	key     string    // YYYY-MM-DD
	weekday int
}

func notFound(err, sentinel error) error {
	if errors.Is(err, domain.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func (r *Resolver) barbershop(ctx context.Context, barbershopID uint) (*models.Barbershop, error) {
	shop, err := r.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, notFound(err, domain.ErrBarbershopNotFound)
	}
	return shop, nil
}

func (r *Resolver) day(ctx context.Context, barbershopID uint, date string) (shopDay, error) {
	shop, err := r.barbershop(ctx, barbershopID)
	if err != nil {
		return shopDay{}, err
	}
	return dayOf(shop, date)
}

func dayOf(shop *models.Barbershop, date string) (shopDay, error) {
	loc := timezone.Location(shop.Timezone)
	d, err := timezone.ParseDate(date, loc)
	if err != nil {
		return shopDay{}, domain.ErrInvalidDateOrTime
	}
	return shopDay{
		shop:    shop,
		loc:     loc,
		date:    d,
		key:     d.Format(timezone.DateLayout),
		weekday: int(d.Weekday()),
	}, nil
}

func parseSlot(slot string) (int, error) {
	m, err := domain.ParseClock(slot)
	if err != nil || m >= domain.MinutesPerDay {
		return 0, domain.ErrInvalidDateOrTime
	}
	return m, nil
}

func (r *Resolver) activeBarber(ctx context.Context, barbershopID, barberID uint) (*models.Barber, error) {
	barber, err := r.repo.GetBarber(ctx, barbershopID, barberID)
	if err != nil {
		return nil, notFound(err, domain.ErrBarberNotFound)
	}
	if !barber.Active {
		return nil, domain.ErrBarberNotFound
	}
	return barber, nil
}

func (r *Resolver) activeService(ctx context.Context, barbershopID, serviceID uint) (*models.Service, error) {
	service, err := r.repo.GetService(ctx, barbershopID, serviceID)
	if err != nil {
		return nil, notFound(err, domain.ErrServiceNotFound)
	}
	if !service.Active || service.DurationMinutes <= 0 {
		return nil, domain.ErrServiceNotFound
	}
	return service, nil
}

func (r *Resolver) plan(ctx context.Context, repo domain.Repository, d shopDay, barber *models.Barber) (domain.DayPlan, error) {
	hours, err := repo.GetBusinessHours(ctx, d.shop.ID, d.weekday)
	if err != nil {
		return domain.DayPlan{}, err
	}
	override, err := repo.GetBarberSchedule(ctx, barber.ID, d.weekday)
	if err != nil {
		return domain.DayPlan{}, err
	}
	return domain.ResolveDayPlan(hours, override, barber)
}

func (r *Resolver) booked(ctx context.Context, d shopDay, barberID uint) ([]domain.BookedInterval, error) {
	cached, gen, ok := r.cache.Get(ctx, barberID, d.key)
	if ok {
		return cached, nil
	}

	from, to := timezone.DayBounds(d.date, d.loc)
	appts, err := r.repo.ListActiveAppointments(ctx, barberID, from, to)
	if err != nil {
		return nil, err
	}

	booked := domain.IntervalsFrom(appts)
	r.cache.Set(ctx, barberID, d.key, gen, booked)
	return booked, nil
}

func (r *Resolver) occupancy(ctx context.Context, d shopDay, barberID, excludeID uint) (domain.Occupancy, error) {
	booked, err := r.booked(ctx, d, barberID)
	if err != nil {
		return domain.Occupancy{}, err
	}
	return domain.BuildOccupancy(booked, d.date, d.loc, excludeID), nil
}

func (r *Resolver) earliest(shop *models.Barbershop) time.Time {
	return r.now().Add(time.Duration(shop.MinAdvanceMinutes) * time.Minute)
}

// query assembles the full slot query. Closed or unconfigured days come
// back as domain.IsUnavailableDay errors.
func (r *Resolver) query(ctx context.Context, d shopDay, barber *models.Barber, duration int, excludeID uint) (domain.SlotQuery, error) {
	plan, err := r.plan(ctx, r.repo, d, barber)
	if err != nil {
		return domain.SlotQuery{}, err
	}
	occ, err := r.occupancy(ctx, d, barber.ID, excludeID)
	if err != nil {
		return domain.SlotQuery{}, err
	}
	return domain.SlotQuery{
		Plan:      plan,
		Duration:  duration,
		Occupancy: occ,
		Day:       d.date,
		Earliest:  r.earliest(d.shop),
	}, nil
}

func (r *Resolver) slots(ctx context.Context, d shopDay, barber *models.Barber, duration int, excludeID uint) ([]string, error) {
	q, err := r.query(ctx, d, barber, duration, excludeID)
	if domain.IsUnavailableDay(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return domain.AvailableSlots(q), nil
}

// guard re-validates a slot inside the write transaction: the barber row
// is locked, the day plan and clock are checked again and the store is
// asked for overlapping active appointments.
//
// The lock queues writers of one barber but does not refresh the
// serializable snapshot, so the overlap read can miss a row committed while
// this tx waited. Such a write fails at commit with 23P01 (overlap
// constraint) or 40001, which the repository maps to ErrConflict.
func (r *Resolver) guard(
	ctx context.Context,
	tx domain.Repository,
	d shopDay,
	barber *models.Barber,
	slot int,
	duration int,
	excludeID uint,
) (time.Time, time.Time, error) {

	if err := tx.LockBarber(ctx, barber.ID); err != nil {
		return time.Time{}, time.Time{}, notFound(err, domain.ErrBarberNotFound)
	}

	plan, err := r.plan(ctx, tx, d, barber)
	if domain.IsUnavailableDay(err) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", domain.ErrSlotUnavailable, err)
	}
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	q := domain.SlotQuery{
		Plan:     plan,
		Duration: duration,
		Day:      d.date,
		Earliest: r.earliest(d.shop),
	}
	if rej := q.CheckWithoutOccupancy(slot); rej != domain.RejectNone {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", domain.ErrSlotUnavailable, rej)
	}

	start := q.Instant(slot).UTC()
	end := start.Add(time.Duration(duration) * time.Minute)

	conflict, err := tx.HasTimeConflict(ctx, barber.ID, start, end, excludeID)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if conflict {
		return time.Time{}, time.Time{}, domain.ErrConflict
	}
	return start, end, nil
}

func (r *Resolver) invalidate(ctx context.Context, barberID uint, dates ...string) {
	r.cache.Invalidate(ctx, barberID, dates...)
}

// localDate is the shop-local date of an instant.
func localDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(timezone.DateLayout)
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
