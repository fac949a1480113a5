package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubRepo answers only what the tested paths reach; anything else panics
// on the nil embedded interface.
type stubRepo struct {
	domain.Repository
	shopErr     error
	appointment *models.Appointment
}

func (s *stubRepo) GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error) {
	if s.shopErr != nil {
		return nil, s.shopErr
	}
	return &models.Barbershop{ID: id, Timezone: "-03:00"}, nil
}

func (s *stubRepo) WithinTx(ctx context.Context, fn func(tx domain.Repository) error) error {
	return fn(s)
}

func (s *stubRepo) GetAppointmentForUpdate(ctx context.Context, barbershopID, appointmentID uint) (*models.Appointment, error) {
	if s.appointment == nil {
		return nil, domain.ErrRecordNotFound
	}
	return s.appointment, nil
}

func withShop(id uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextBarbershopID, id)
		c.Next()
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestWriteBookingError_StatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrBarbershopNotFound, http.StatusNotFound},
		{domain.ErrAppointmentNotFound, http.StatusNotFound},
		{domain.ErrBarberNotFound, http.StatusBadRequest},
		{domain.ErrServiceNotFound, http.StatusBadRequest},
		{domain.ErrInvalidDateOrTime, http.StatusBadRequest},
		{domain.ErrInvalidClient, http.StatusBadRequest},
		{domain.ErrConflict, http.StatusConflict},
		{domain.ErrInvalidState, http.StatusConflict},
		{domain.ErrLeadTimeViolation, http.StatusUnprocessableEntity},
		{domain.ErrSlotUnavailable, http.StatusUnprocessableEntity},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

		writeBookingError(c, zap.NewNop(), tc.err)

		if w.Code != tc.want {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.want, w.Code)
		}
		body := decode(t, w)
		if code := httperr.Code(tc.err); code != "" && body["error_code"] != code {
			t.Fatalf("%v: expected error_code %q, got %v", tc.err, code, body["error_code"])
		}
	}
}

func newAvailabilityRouter(repo domain.Repository) *gin.Engine {
	r := ucAppointment.NewResolver(repo, nil, time.Now)
	h := NewAvailabilityHandler(
		ucAppointment.NewGetAvailableSlots(r),
		ucAppointment.NewGetAnyBarberSlots(r),
		ucAppointment.NewGetAvailableBarbers(r),
		ucAppointment.NewGetAvailableServices(r),
		ucAppointment.NewGetOccupiedSlots(r),
		zap.NewNop(),
	)

	engine := gin.New()
	engine.Use(withShop(1))
	engine.GET("/availability", h.Slots)
	return engine
}

func TestSlots_StorageFailureDegrades(t *testing.T) {
	engine := newAvailabilityRouter(&stubRepo{shopErr: errors.New("db down")})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/availability?barber_id=1&service_id=1&date=2030-05-07", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decode(t, w)
	if body["degraded"] != true {
		t.Fatalf("expected degraded flag, got %v", body)
	}
	if slots, ok := body["slots"].([]any); !ok || len(slots) != 0 {
		t.Fatalf("expected empty slots, got %v", body["slots"])
	}
}

func TestSlots_BusinessErrorIsReported(t *testing.T) {
	engine := newAvailabilityRouter(&stubRepo{shopErr: domain.ErrRecordNotFound})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/availability?barber_id=1&service_id=1&date=2030-05-07", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestSlots_MissingParams(t *testing.T) {
	engine := newAvailabilityRouter(&stubRepo{})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/availability?date=2030-05-07", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCancel_AlreadyCancelledIsConflict(t *testing.T) {
	repo := &stubRepo{appointment: &models.Appointment{
		ID:      7,
		Status:  string(domain.StatusCancelled),
		StartAt: time.Now().Add(48 * time.Hour),
		EndAt:   time.Now().Add(49 * time.Hour),
	}}
	r := ucAppointment.NewResolver(repo, nil, time.Now)
	h := NewAppointmentHandler(nil, nil, nil, ucAppointment.NewCancelAppointment(r, nil), nil, nil, nil, zap.NewNop())

	engine := gin.New()
	engine.Use(withShop(1))
	engine.PATCH("/appointments/:id/cancel", h.Cancel)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/appointments/7/cancel", nil))

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if body := decode(t, w); body["error_code"] != "invalid_state" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestCancel_InvalidID(t *testing.T) {
	h := NewAppointmentHandler(nil, nil, nil, nil, nil, nil, nil, zap.NewNop())

	engine := gin.New()
	engine.Use(withShop(1))
	engine.PATCH("/appointments/:id/cancel", h.Cancel)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/appointments/abc/cancel", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestReady_ReportsFailingCheck(t *testing.T) {
	h := NewHealthHandler(map[string]Check{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("refused") },
	}, zap.NewNop())

	engine := gin.New()
	engine.GET("/ready", h.Ready)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	checks := decode(t, w)["checks"].(map[string]any)
	if checks["database"] != "up" || checks["redis"] != "down" {
		t.Fatalf("unexpected checks %v", checks)
	}
}
