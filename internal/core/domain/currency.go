package domain

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // e.g., "USD"
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	// Precision is the number of minor-unit digits. Stored prices depend on it,
	// so an entry's precision must never change once amounts have been persisted.
	Precision int `json:"precision"`
}

// DefaultCurrencyCode is what LookupCurrency resolves unknown codes to.
const DefaultCurrencyCode = "JPY"

// supportedCurrencies is the static registry. Order is the display order.
var supportedCurrencies = []Currency{
	{CurrencyCode: "JPY", Symbol: "¥", Name: "Japanese Yen", Precision: 0},
	{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", Precision: 2},
	{CurrencyCode: "EUR", Symbol: "€", Name: "Euro", Precision: 2},
}

var currencyIndex = func() map[string]Currency {
	idx := make(map[string]Currency, len(supportedCurrencies))
	for _, c := range supportedCurrencies {
		idx[c.CurrencyCode] = c
	}
	return idx
}()

// SupportedCurrencies returns a copy of the registry in display order.
func SupportedCurrencies() []Currency {
	out := make([]Currency, len(supportedCurrencies))
	copy(out, supportedCurrencies)
	return out
}

// IsSupportedCurrency reports whether code is in the registry.
func IsSupportedCurrency(code string) bool {
	_, ok := currencyIndex[code]
	return ok
}

// LookupCurrency resolves code against the registry. Unknown codes resolve to
// the default currency rather than failing: codes reaching this point are
// expected to have been validated already.
func LookupCurrency(code string) Currency {
	if c, ok := currencyIndex[code]; ok {
		return c
	}
	return currencyIndex[DefaultCurrencyCode]
}
