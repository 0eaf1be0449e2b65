package booking

// Quote breaks a rental price into its components.
type Quote struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// CalculatePrice computes the cost of renting at dailyRate for days with a
// percentage discount. Pure and deterministic. Discounts outside [0,100] are
// passed through unvalidated; callers own range checks.
func CalculatePrice(dailyRate float64, days int, discountPercent float64) Quote {
	subtotal := dailyRate * float64(days)
	discount := subtotal * (discountPercent / 100)
	return Quote{
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal - discount,
	}
}
