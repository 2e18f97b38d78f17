package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/speedisha/speedisha/internal/reference"
)

// Style selects the visual treatment applied on top of a color scheme.
type Style string

const (
	StyleBasic   Style = "basic"
	StyleStyled  Style = "styled"
	StylePremium Style = "premium"
)

// ParseStyle accepts the canonical style names plus the legacy
// "uber-styled" alias for the premium treatment.
func ParseStyle(raw string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "basic":
		return StyleBasic, nil
	case "styled":
		return StyleStyled, nil
	case "premium", "uber-styled":
		return StylePremium, nil
	default:
		return "", ErrInvalidStyle
	}
}

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ColorScheme is the three-color branding applied by the styled and
// premium treatments.
type ColorScheme struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

// Validate checks every color is a 6-digit hex string.
func (c ColorScheme) Validate() error {
	for _, v := range []string{c.Primary, c.Secondary, c.Accent} {
		if !hexColorPattern.MatchString(v) {
			return ErrInvalidColor
		}
	}
	return nil
}

// DefaultColorScheme matches the branding a fresh draft starts with.
func DefaultColorScheme() ColorScheme {
	return ColorScheme{
		Primary:   "#518b03",
		Secondary: "#3d6802",
		Accent:    "#7ab61d",
	}
}

// BillTo is the client being invoiced.
type BillTo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

// Item is one line of the invoice. Its values are keyed by field name and
// typed per the field definition.
type Item struct {
	ID     string                `json:"id"`
	Values map[string]FieldValue `json:"values"`
}

// NewItem builds an item with zero values for every known field. New
// items start at quantity 1 so the derived amount tracks price edits
// immediately.
func NewItem(id string, fields []FieldDefinition) Item {
	item := Item{ID: id, Values: make(map[string]FieldValue, len(fields))}
	for _, f := range fields {
		item.Values[f.Name] = ZeroValue(f.Type)
	}
	item.Values["quantity"] = NumberValue(1)
	item.Values["price"] = NumberValue(0)
	item.Values["amount"] = NumberValue(0)
	return item
}

// Get returns the value for a field name, with the zero text value when
// the item has never seen the field.
func (it Item) Get(name string) FieldValue {
	if v, ok := it.Values[name]; ok {
		return v
	}
	return TextValue("")
}

func (it Item) Amount() float64 {
	return it.Get("amount").AsNumber()
}

func (it *Item) recomputeAmount() {
	qty := it.Get("quantity").AsNumber()
	price := it.Get("price").AsNumber()
	it.Values["amount"] = NumberValue(qty * price)
}

// Document is the transient invoice draft owned by one builder session.
// It lives only in memory; mutations happen exclusively through the named
// operations below and derived totals are recomputed on read.
type Document struct {
	InvoiceNumber string              `json:"invoiceNumber"`
	Date          string              `json:"date"`
	DueDate       string              `json:"dueDate"`
	Tax           float64             `json:"tax"`
	CompanyName   string              `json:"companyName"`
	CompanyLogo   string              `json:"companyLogo"`
	BillTo        BillTo              `json:"billTo"`
	Items         []Item              `json:"items"`
	Notes         string              `json:"notes"`
	Currency      reference.Currency  `json:"currency"`
	ColorScheme   ColorScheme         `json:"colorScheme"`
	Style         Style               `json:"style"`
}

// NewDocument builds a draft with the builder's defaults: today's date,
// the default currency and color scheme, one empty line item.
func NewDocument(now time.Time, firstItemID string, fields []FieldDefinition) *Document {
	return &Document{
		Date:        now.UTC().Format("2006-01-02"),
		Currency:    reference.DefaultCountry.Currency,
		ColorScheme: DefaultColorScheme(),
		Style:       StyleBasic,
		Items:       []Item{NewItem(firstItemID, fields)},
	}
}

// UpdateHeader sets one header field by its wire name.
func (d *Document) UpdateHeader(field, value string) error {
	switch field {
	case "invoiceNumber":
		d.InvoiceNumber = value
	case "date":
		d.Date = value
	case "dueDate":
		d.DueDate = value
	case "notes":
		d.Notes = value
	case "tax":
		tax, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || tax < 0 || tax > 100 {
			return ErrInvalidTax
		}
		d.Tax = tax
	default:
		return ErrUnknownField
	}
	return nil
}

// UpdateBillTo sets one bill-to field by its wire name.
func (d *Document) UpdateBillTo(field, value string) error {
	switch field {
	case "name":
		d.BillTo.Name = value
	case "address":
		d.BillTo.Address = value
	case "email":
		d.BillTo.Email = value
	default:
		return ErrUnknownField
	}
	return nil
}

// UpdateColor sets one branding color after validating the hex format.
func (d *Document) UpdateColor(key, value string) error {
	if !hexColorPattern.MatchString(value) {
		return ErrInvalidColor
	}
	switch key {
	case "primary":
		d.ColorScheme.Primary = value
	case "secondary":
		d.ColorScheme.Secondary = value
	case "accent":
		d.ColorScheme.Accent = value
	default:
		return ErrUnknownField
	}
	return nil
}

func (d *Document) SetCompanyName(name string) {
	d.CompanyName = name
}

func (d *Document) SetCurrency(c reference.Currency) {
	d.Currency = c
}

func (d *Document) SetStyle(s Style) {
	d.Style = s
}

// SetLogo records an opaque logo reference (an uploaded file URL).
func (d *Document) SetLogo(ref string) {
	d.CompanyLogo = ref
}

func (d *Document) RemoveLogo() {
	d.CompanyLogo = ""
}

// AddItem appends a fresh item with zeroed values for every field.
func (d *Document) AddItem(id string, fields []FieldDefinition) Item {
	item := NewItem(id, fields)
	d.Items = append(d.Items, item)
	return item
}

// RemoveItem removes the item at index. The list is kept non-empty: the
// last remaining item cannot be deleted.
func (d *Document) RemoveItem(index int) error {
	if index < 0 || index >= len(d.Items) {
		return ErrItemNotFound
	}
	if len(d.Items) <= 1 {
		return ErrLastItem
	}
	d.Items = append(d.Items[:index], d.Items[index+1:]...)
	return nil
}

// UpdateItem sets one field on the item at index. Editing quantity or
// price synchronously recomputes the derived amount; the amount itself is
// never directly assignable.
func (d *Document) UpdateItem(index int, fieldName string, value FieldValue) error {
	if index < 0 || index >= len(d.Items) {
		return ErrItemNotFound
	}
	if fieldName == "amount" {
		return ErrDerivedField
	}

	item := &d.Items[index]
	if item.Values == nil {
		item.Values = make(map[string]FieldValue)
	}
	item.Values[fieldName] = value

	if fieldName == "quantity" || fieldName == "price" {
		item.recomputeAmount()
	}
	return nil
}

// Subtotal sums the item amounts at full precision.
func (d *Document) Subtotal() float64 {
	var sum float64
	for _, it := range d.Items {
		sum += it.Amount()
	}
	return sum
}

// TaxAmount derives the tax from the subtotal at full precision.
func (d *Document) TaxAmount() float64 {
	return d.Subtotal() * d.Tax / 100
}

// Total is subtotal plus tax. Rounding happens only at display time.
func (d *Document) Total() float64 {
	return d.Subtotal() + d.TaxAmount()
}
