package money

// Code represents a currency code (e.g., "USD", "TRY").
type Code string

// Common currency codes
const (
	USD Code = "USD" // US Dollar
	EUR Code = "EUR" // Euro
	GBP Code = "GBP" // British Pound
	TRY Code = "TRY" // Turkish Lira
	JPY Code = "JPY" // Japanese Yen
	KWD Code = "KWD" // Kuwaiti Dinar
	BHD Code = "BHD" // Bahraini Dinar
)

// minorUnits lists currencies whose precision differs from the default of 2.
var minorUnits = map[Code]int32{
	JPY: 0,
	KWD: 3,
	BHD: 3,
}

// IsValid reports whether the code is exactly three uppercase ASCII letters.
func (c Code) IsValid() bool {
	if len(c) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if c[i] < 'A' || c[i] > 'Z' {
			return false
		}
	}
	return true
}

// Decimals returns the number of fractional digits amounts in this currency may carry.
func (c Code) Decimals() int32 {
	if d, ok := minorUnits[c]; ok {
		return d
	}
	return 2
}

// String returns the string representation of the currency code.
func (c Code) String() string {
	return string(c)
}
