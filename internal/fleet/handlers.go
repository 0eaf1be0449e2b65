package fleet

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/gariflow/backend-gari/internal/common"
	"github.com/gariflow/backend-gari/internal/events"
)

// RevenueSource reports the ledger aggregate for the dashboard without
// coupling the fleet package to the booking package.
type RevenueSource interface {
	TotalRevenue() float64
}

// Handler exposes the vehicle query/command surface and the dashboard stats.
type Handler struct {
	Registry *Registry
	Revenue  RevenueSource
	Validate *validator.Validate
	Bus      *events.Bus
}

type addVehicleRequest struct {
	Make      string  `json:"make" validate:"required"`
	Model     string  `json:"model" validate:"required"`
	Year      int     `json:"year" validate:"required,gte=1950,lte=2100"`
	Category  string  `json:"category" validate:"required"`
	DailyRate float64 `json:"dailyRate" validate:"required,gt=0"`
}

type statsResponse struct {
	Stats
	TotalRevenue float64 `json:"totalRevenue"`
}

// List handles GET /vehicles.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	common.JSONData(w, http.StatusOK, h.Registry.List())
}

// ListAvailable handles GET /vehicles/available.
func (h *Handler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	common.JSONData(w, http.StatusOK, h.Registry.ListAvailable())
}

// Get handles GET /vehicles/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(strings.TrimSpace(chi.URLParam(r, "id")))
	if err != nil || id <= 0 {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid vehicle id", nil)
		return
	}
	vehicle, ok := h.Registry.FindByID(id)
	if !ok {
		common.JSONError(w, http.StatusNotFound, "VEHICLE_NOT_FOUND", "vehicle not found", nil)
		return
	}
	common.JSONData(w, http.StatusOK, vehicle)
}

// Add handles POST /vehicles.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var payload addVehicleRequest
	if err := common.DecodeJSON(r, &payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid vehicle request", validationDetails(err))
			return
		}
	}
	vehicle := h.Registry.Add(payload.Make, payload.Model, payload.Year, payload.Category, payload.DailyRate)
	h.emitAdded(r.Context(), vehicle)
	common.JSONData(w, http.StatusCreated, vehicle)
}

// Stats handles GET /stats: the dashboard's counts plus the raw revenue
// number. Currency formatting stays on the client.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp := statsResponse{Stats: h.Registry.Stats()}
	if h.Revenue != nil {
		resp.TotalRevenue = h.Revenue.TotalRevenue()
	}
	common.JSONData(w, http.StatusOK, resp)
}

func (h *Handler) emitAdded(ctx context.Context, v Vehicle) {
	if h.Bus == nil {
		return
	}
	_, _ = h.Bus.Emit(ctx, events.TopicVehicleAdded, strconv.Itoa(v.ID), map[string]any{
		"id":           v.ID,
		"registration": v.Registration,
		"make":         v.Make,
		"model":        v.Model,
		"dailyRate":    v.DailyRate,
	})
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
