package marketplace

import "strings"

// fallbackCurrency is used for countries missing from countryCurrencies.
const fallbackCurrency = "USD"

// countryCurrencies maps ISO 3166-1 alpha-2 country codes to the currency a
// new marketplace in that country accepts.
var countryCurrencies = map[string]string{
	"AE": "AED", "AR": "ARS", "AT": "EUR", "AU": "AUD", "BE": "EUR",
	"BG": "BGN", "BR": "BRL", "CA": "CAD", "CH": "CHF", "CL": "CLP",
	"CN": "CNY", "CO": "COP", "CY": "EUR", "CZ": "CZK", "DE": "EUR",
	"DK": "DKK", "EE": "EUR", "EG": "EGP", "ES": "EUR", "FI": "EUR",
	"FR": "EUR", "GB": "GBP", "GR": "EUR", "HK": "HKD", "HR": "EUR",
	"HU": "HUF", "ID": "IDR", "IE": "EUR", "IL": "ILS", "IN": "INR",
	"IS": "ISK", "IT": "EUR", "JP": "JPY", "KE": "KES", "KR": "KRW",
	"LT": "EUR", "LU": "EUR", "LV": "EUR", "MA": "MAD", "MT": "EUR",
	"MX": "MXN", "MY": "MYR", "NG": "NGN", "NL": "EUR", "NO": "NOK",
	"NZ": "NZD", "PE": "PEN", "PH": "PHP", "PK": "PKR", "PL": "PLN",
	"PT": "EUR", "RO": "RON", "RU": "RUB", "SA": "SAR", "SE": "SEK",
	"SG": "SGD", "SI": "EUR", "SK": "EUR", "TH": "THB", "TR": "TRY",
	"TW": "TWD", "UA": "UAH", "US": "USD", "VN": "VND", "ZA": "ZAR",
}

// CurrencyFor returns the currency of a country code. Lookup is case
// insensitive; unknown countries get USD.
func CurrencyFor(country string) string {
	if c, ok := countryCurrencies[strings.ToUpper(country)]; ok {
		return c
	}
	return fallbackCurrency
}
