package booking_test

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/gariflow/backend-gari/internal/booking"
	"github.com/gariflow/backend-gari/internal/fleet"
)

type reservationResponse struct {
	Data booking.Reservation `json:"data"`
}

type reservationListResponse struct {
	Data []booking.Reservation `json:"data"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) (*chi.Mux, *booking.Ledger, *fleet.Registry, fleet.Vehicle) {
	t.Helper()
	registry := fleet.NewRegistry(rand.New(rand.NewSource(1)))
	vehicle := registry.Add("Toyota", "Corolla", 2022, "Sedan", 2500)
	codes := booking.NewCodeGenerator(booking.SystemClock{}, rand.New(rand.NewSource(2)))
	ledger := booking.NewLedger(registry, codes, booking.SystemClock{}, nil)
	handler := &booking.Handler{Ledger: ledger, Validate: validator.New()}

	r := chi.NewRouter()
	r.Get("/api/v1/reservations", handler.List)
	r.Post("/api/v1/reservations", handler.Create)
	r.Post("/api/v1/reservations/{code}/confirm", handler.Confirm)
	r.Delete("/api/v1/reservations/{code}", handler.Cancel)
	return r, ledger, registry, vehicle
}

func TestCreateReservationHandler(t *testing.T) {
	r, _, registry, vehicle := newTestRouter(t)

	body := `{"customerName":"Jane","customerEmail":"j@x.com","vehicleId":1,"pickupDate":"2024-01-01","returnDate":"2024-01-04"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp reservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, strings.HasPrefix(resp.Data.Code, "RES-"))
	require.Equal(t, 3, resp.Data.Days)
	require.Equal(t, 7500.0, resp.Data.Total)
	require.Equal(t, booking.StatusPending, resp.Data.Status)

	updated, ok := registry.FindByID(vehicle.ID)
	require.True(t, ok)
	require.Equal(t, fleet.StatusReserved, updated.Status)
}

func TestCreateReservationValidation(t *testing.T) {
	r, _, _, _ := newTestRouter(t)

	body := `{"customerName":"","customerEmail":"not-an-email","vehicleId":1,"pickupDate":"2024-01-01","returnDate":"2024-01-04"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "VALIDATION", resp.Error.Code)
}

func TestCreateReservationDateRange(t *testing.T) {
	r, _, _, _ := newTestRouter(t)

	body := `{"customerName":"Jane","customerEmail":"j@x.com","vehicleId":1,"pickupDate":"2024-01-04","returnDate":"2024-01-04"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "INVALID_DATE_RANGE", resp.Error.Code)
}

func TestCreateReservationUnknownVehicle(t *testing.T) {
	r, _, _, _ := newTestRouter(t)

	body := `{"customerName":"Jane","customerEmail":"j@x.com","vehicleId":42,"pickupDate":"2024-01-01","returnDate":"2024-01-04"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateReservationUnavailableVehicle(t *testing.T) {
	r, _, registry, vehicle := newTestRouter(t)
	registry.SetStatus(vehicle.ID, fleet.StatusMaintenance)

	body := `{"customerName":"Jane","customerEmail":"j@x.com","vehicleId":1,"pickupDate":"2024-01-01","returnDate":"2024-01-04"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "VEHICLE_UNAVAILABLE", resp.Error.Code)
}

func TestConfirmUnknownReservation(t *testing.T) {
	r, _, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/RES-0-0/confirm", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "RESERVATION_NOT_FOUND", resp.Error.Code)
}

func TestReservationLifecycleOverHTTP(t *testing.T) {
	r, ledger, registry, vehicle := newTestRouter(t)

	body := `{"customerName":"Jane","customerEmail":"j@x.com","vehicleId":1,"pickupDate":"2024-01-01","returnDate":"2024-01-04"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created reservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	code := created.Data.Code

	req = httptest.NewRequest(http.MethodPost, "/api/v1/reservations/"+code+"/confirm", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	v, _ := registry.FindByID(vehicle.ID)
	require.Equal(t, fleet.StatusRented, v.Status)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/reservations/"+code, nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/reservations", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var list reservationListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Empty(t, list.Data)

	v, _ = registry.FindByID(vehicle.ID)
	require.Equal(t, fleet.StatusAvailable, v.Status)
	require.Equal(t, 0.0, ledger.TotalRevenue())
}
