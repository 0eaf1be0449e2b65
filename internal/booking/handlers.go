package booking

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/gariflow/backend-gari/internal/common"
	"github.com/gariflow/backend-gari/internal/obs"
)

const dateLayout = "2006-01-02"

// Handler exposes the reservation command and query surface over HTTP. It is
// one possible presentation adapter; the ledger has no knowledge of it.
type Handler struct {
	Ledger   *Ledger
	Validate *validator.Validate
}

type createReservationRequest struct {
	CustomerName  string `json:"customerName" validate:"required"`
	CustomerEmail string `json:"customerEmail" validate:"required,email"`
	VehicleID     int    `json:"vehicleId" validate:"required,gt=0"`
	PickupDate    string `json:"pickupDate" validate:"required,datetime=2006-01-02"`
	ReturnDate    string `json:"returnDate" validate:"required,datetime=2006-01-02"`
}

// List handles GET /reservations.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	common.JSONData(w, http.StatusOK, h.Ledger.List())
}

// Create handles POST /reservations.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var payload createReservationRequest
	if err := common.DecodeJSON(r, &payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid reservation request", validationDetails(err))
			return
		}
	}
	pickup, _ := time.Parse(dateLayout, payload.PickupDate)
	ret, _ := time.Parse(dateLayout, payload.ReturnDate)

	res, err := h.Ledger.Create(r.Context(), payload.CustomerName, payload.CustomerEmail, payload.VehicleID, pickup, ret)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	common.JSONData(w, http.StatusCreated, res)
}

// Confirm handles POST /reservations/{code}/confirm.
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(chi.URLParam(r, "code"))
	if code == "" {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "code is required", nil)
		return
	}
	res, err := h.Ledger.Confirm(r.Context(), code)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, res)
}

// Cancel handles DELETE /reservations/{code}.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(chi.URLParam(r, "code"))
	if code == "" {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "code is required", nil)
		return
	}
	res, err := h.Ledger.Cancel(r.Context(), code)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, res)
}

func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidDateRange):
		countRejection("invalid_date_range")
		common.JSONError(w, http.StatusUnprocessableEntity, "INVALID_DATE_RANGE", err.Error(), nil)
	case errors.Is(err, ErrVehicleNotFound):
		countRejection("vehicle_not_found")
		common.JSONError(w, http.StatusNotFound, "VEHICLE_NOT_FOUND", err.Error(), nil)
	case errors.Is(err, ErrVehicleUnavailable):
		countRejection("vehicle_unavailable")
		common.JSONError(w, http.StatusConflict, "VEHICLE_UNAVAILABLE", err.Error(), nil)
	case errors.Is(err, ErrReservationNotFound):
		common.JSONError(w, http.StatusNotFound, "RESERVATION_NOT_FOUND", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unexpected error", nil)
	}
}

func countRejection(reason string) {
	if obs.ReservationRejectedTotal != nil {
		obs.ReservationRejectedTotal.WithLabelValues(reason).Inc()
	}
}

func validationDetails(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
