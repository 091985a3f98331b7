package money

// Code represents a currency code (e.g., "KES", "USD").
type Code string

// Common currency codes
const (
	KES Code = "KES" // Kenyan Shilling
	USD Code = "USD" // US Dollar
	EUR Code = "EUR" // Euro
	JPY Code = "JPY" // Japanese Yen
	GBP Code = "GBP" // British Pound
)
