package domain

// Category groups instruments for display and filtering. Derived from the
// instrument identifier on every read, never stored.
type Category string

const (
	CategoryForex       Category = "Forex"
	CategoryMetals      Category = "Metals"
	CategoryCommodities Category = "Commodities"
	CategoryIndices     Category = "Indices"
	CategoryBonds       Category = "Bonds"
	CategoryCFD         Category = "CFDs"
	CategoryOther       Category = "Other"
)

func (c Category) String() string { return string(c) }
