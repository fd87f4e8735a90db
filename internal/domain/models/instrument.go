package models

import "fmt"

// Category identifies an instrument class. Every catalog operation is
// dispatched on it; filter shape and column schema differ per category.
type Category int

const (
	CategoryEquity Category = iota
	CategoryFund
	CategoryFuture
	CategoryOption
)

var categoryCodes = map[Category]string{
	CategoryEquity: "stock",
	CategoryFund:   "fund",
	CategoryFuture: "future",
	CategoryOption: "option",
}

// Categories lists all categories in tab order.
func Categories() []Category {
	return []Category{CategoryEquity, CategoryFund, CategoryFuture, CategoryOption}
}

func (c Category) String() string {
	if s, ok := categoryCodes[c]; ok {
		return s
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryCodes[c]
	return ok
}

// ParseCategory maps a wire code to its Category.
func ParseCategory(s string) (Category, error) {
	for c, code := range categoryCodes {
		if code == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// Instrument is the base shape shared by all catalog rows.
// Codes are unique within a category, not across categories.
type Instrument struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Market   string  `json:"market"`
	Industry string  `json:"industry"`
	Price    float64 `json:"price"`
	Change   float64 `json:"change"`
}

// Fund adds net-asset-value fields to the base instrument.
type Fund struct {
	Instrument
	FundType     string  `json:"fund_type"`
	FundCategory string  `json:"fund_category"`
	NAV          float64 `json:"nav"`
	NAVDate      string  `json:"nav_date"`
}

// Future adds contract fields to the base instrument.
type Future struct {
	Instrument
	Symbol       string `json:"symbol"`
	DeliveryDate string `json:"delivery_date"`
	Exchange     string `json:"exchange"`
}

// Option adds contract fields to the base instrument.
type Option struct {
	Instrument
	Underlying  string  `json:"underlying"`
	ExpiryDate  string  `json:"expiry_date"`
	StrikePrice float64 `json:"strike_price"`
	OptionType  string  `json:"option_type"` // C or P
	Exchange    string  `json:"exchange"`
}

// CatalogRow is one row of a catalog page on the wire: the common
// columns plus the variant columns of the row's category, omitted for
// the others. Variant rows are built through the Row constructors so
// that every category maps its schema in one place.
type CatalogRow struct {
	Instrument
	FundType     string  `json:"fund_type,omitempty"`
	FundCategory string  `json:"fund_category,omitempty"`
	NAV          float64 `json:"nav,omitempty"`
	NAVDate      string  `json:"nav_date,omitempty"`
	Symbol       string  `json:"symbol,omitempty"`
	DeliveryDate string  `json:"delivery_date,omitempty"`
	Exchange     string  `json:"exchange,omitempty"`
	Underlying   string  `json:"underlying,omitempty"`
	ExpiryDate   string  `json:"expiry_date,omitempty"`
	StrikePrice  float64 `json:"strike_price,omitempty"`
	OptionType   string  `json:"option_type,omitempty"`
}

// Row converts an equity listing to a catalog row.
func (i Instrument) Row() CatalogRow {
	return CatalogRow{Instrument: i}
}

// Row converts a fund listing to a catalog row.
func (f Fund) Row() CatalogRow {
	return CatalogRow{
		Instrument:   f.Instrument,
		FundType:     f.FundType,
		FundCategory: f.FundCategory,
		NAV:          f.NAV,
		NAVDate:      f.NAVDate,
	}
}

// Row converts a future listing to a catalog row.
func (f Future) Row() CatalogRow {
	return CatalogRow{
		Instrument:   f.Instrument,
		Symbol:       f.Symbol,
		DeliveryDate: f.DeliveryDate,
		Exchange:     f.Exchange,
	}
}

// Row converts an option listing to a catalog row.
func (o Option) Row() CatalogRow {
	return CatalogRow{
		Instrument:  o.Instrument,
		Underlying:  o.Underlying,
		ExpiryDate:  o.ExpiryDate,
		StrikePrice: o.StrikePrice,
		OptionType:  o.OptionType,
		Exchange:    o.Exchange,
	}
}

// InstrumentPage is the wire shape of every catalog listing response.
type InstrumentPage struct {
	Data     []CatalogRow `json:"data"`
	Total    int          `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

// HasNext reports whether a further page exists.
func (p *InstrumentPage) HasNext() bool {
	return p.Page*p.PageSize < p.Total
}

// HasPrev reports whether a prior page exists.
func (p *InstrumentPage) HasPrev() bool {
	return p.Page > 1
}
