package domain

// Open Collective order shapes, mirroring the getOrderInfo GraphQL query.
// Fetched fresh per event, never cached.

type Amount struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

type Tax struct {
	Type string  `json:"type"`
	Rate float64 `json:"rate"`
}

type Account struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type OrderInfo struct {
	Description       string  `json:"description"`
	PlatformTipAmount Amount  `json:"platformTipAmount"`
	Tax               *Tax    `json:"tax"`
	HostFeePercent    float64 `json:"hostFeePercent"`
	TotalAmount       Amount  `json:"totalAmount"`
	CreatedByAccount  Account `json:"createdByAccount"`
}
