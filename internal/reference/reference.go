// Package reference holds the static country and currency lookup tables.
package reference

// Currency identifies a display currency.
type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Country maps a country to its currency.
type Country struct {
	Name     string   `json:"name"`
	Code     string   `json:"code"`
	Currency Currency `json:"currency"`
}

// DefaultCountry is used whenever a lookup misses.
var DefaultCountry = Country{
	Name: "Kenya",
	Code: "KE",
	Currency: Currency{
		Code:   "KES",
		Name:   "Kenyan Shilling",
		Symbol: "KSh",
	},
}

var countries = []Country{
	DefaultCountry,
	{Name: "United States", Code: "US", Currency: Currency{Code: "USD", Name: "US Dollar", Symbol: "$"}},
	{Name: "United Kingdom", Code: "GB", Currency: Currency{Code: "GBP", Name: "British Pound", Symbol: "£"}},
	{Name: "European Union", Code: "EU", Currency: Currency{Code: "EUR", Name: "Euro", Symbol: "€"}},
	{Name: "Tanzania", Code: "TZ", Currency: Currency{Code: "TZS", Name: "Tanzanian Shilling", Symbol: "TSh"}},
	{Name: "Uganda", Code: "UG", Currency: Currency{Code: "UGX", Name: "Ugandan Shilling", Symbol: "USh"}},
	{Name: "South Africa", Code: "ZA", Currency: Currency{Code: "ZAR", Name: "South African Rand", Symbol: "R"}},
	{Name: "Nigeria", Code: "NG", Currency: Currency{Code: "NGN", Name: "Nigerian Naira", Symbol: "₦"}},
	{Name: "China", Code: "CN", Currency: Currency{Code: "CNY", Name: "Chinese Yuan", Symbol: "¥"}},
	{Name: "Japan", Code: "JP", Currency: Currency{Code: "JPY", Name: "Japanese Yen", Symbol: "¥"}},
	{Name: "India", Code: "IN", Currency: Currency{Code: "INR", Name: "Indian Rupee", Symbol: "₹"}},
	{Name: "Australia", Code: "AU", Currency: Currency{Code: "AUD", Name: "Australian Dollar", Symbol: "A$"}},
	{Name: "Canada", Code: "CA", Currency: Currency{Code: "CAD", Name: "Canadian Dollar", Symbol: "C$"}},
	{Name: "Switzerland", Code: "CH", Currency: Currency{Code: "CHF", Name: "Swiss Franc", Symbol: "Fr"}},
	{Name: "Brazil", Code: "BR", Currency: Currency{Code: "BRL", Name: "Brazilian Real", Symbol: "R$"}},
	{Name: "Russia", Code: "RU", Currency: Currency{Code: "RUB", Name: "Russian Ruble", Symbol: "₽"}},
	{Name: "South Korea", Code: "KR", Currency: Currency{Code: "KRW", Name: "South Korean Won", Symbol: "₩"}},
	{Name: "Singapore", Code: "SG", Currency: Currency{Code: "SGD", Name: "Singapore Dollar", Symbol: "S$"}},
	{Name: "New Zealand", Code: "NZ", Currency: Currency{Code: "NZD", Name: "New Zealand Dollar", Symbol: "NZ$"}},
	{Name: "Mexico", Code: "MX", Currency: Currency{Code: "MXN", Name: "Mexican Peso", Symbol: "$"}},
	{Name: "Ethiopia", Code: "ET", Currency: Currency{Code: "ETB", Name: "Ethiopian Birr", Symbol: "Br"}},
	{Name: "Ghana", Code: "GH", Currency: Currency{Code: "GHS", Name: "Ghanaian Cedi", Symbol: "₵"}},
	{Name: "Rwanda", Code: "RW", Currency: Currency{Code: "RWF", Name: "Rwandan Franc", Symbol: "FRw"}},
	{Name: "United Arab Emirates", Code: "AE", Currency: Currency{Code: "AED", Name: "UAE Dirham", Symbol: "د.إ"}},
	{Name: "Saudi Arabia", Code: "SA", Currency: Currency{Code: "SAR", Name: "Saudi Riyal", Symbol: "﷼"}},
}

// Countries lists every supported country in display order.
func Countries() []Country {
	out := make([]Country, len(countries))
	copy(out, countries)
	return out
}

// Currencies lists every supported currency in country display order.
func Currencies() []Currency {
	out := make([]Currency, 0, len(countries))
	for _, c := range countries {
		out = append(out, c.Currency)
	}
	return out
}

// CurrencyByCountryCode resolves the currency for a country code.
func CurrencyByCountryCode(countryCode string) Currency {
	for _, c := range countries {
		if c.Code == countryCode {
			return c.Currency
		}
	}
	return DefaultCountry.Currency
}

// CurrencyByCode resolves a currency by its ISO code.
func CurrencyByCode(currencyCode string) Currency {
	for _, c := range countries {
		if c.Currency.Code == currencyCode {
			return c.Currency
		}
	}
	return DefaultCountry.Currency
}
