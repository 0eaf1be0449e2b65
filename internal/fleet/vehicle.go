package fleet

// Status enumerates the rental states a vehicle can be in.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusReserved    Status = "reserved"
	StatusRented      Status = "rented"
	StatusMaintenance Status = "maintenance"
)

// Vehicle is a fleet record. Identifiers are assigned sequentially and never
// reused; registration plates are generated and not guaranteed unique.
type Vehicle struct {
	ID           int     `json:"id"`
	Registration string  `json:"registration"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	Category     string  `json:"category"`
	DailyRate    float64 `json:"dailyRate"`
	Status       Status  `json:"status"`
	Mileage      int     `json:"mileage"`
}

// Label returns the display name used on reservations ("Make Model").
func (v Vehicle) Label() string {
	return v.Make + " " + v.Model
}

// Stats summarises the fleet for the dashboard.
type Stats struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Rented    int `json:"rented"`
}
