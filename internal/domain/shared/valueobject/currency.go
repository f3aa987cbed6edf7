package valueobject

// Currency represents an ISO 4217 currency code
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	CNY Currency = "CNY"
)

// DefaultCurrency is used when no currency is specified
const DefaultCurrency = USD

// IsValid checks if the currency code is supported
func (c Currency) IsValid() bool {
	switch c {
	case USD, EUR, GBP, JPY, CNY:
		return true
	}
	return false
}

// String returns the currency code as a string
func (c Currency) String() string {
	return string(c)
}
