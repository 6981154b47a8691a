package enums

// CustomizationType classifies an add-on. The set is open ended: unknown
// values are carried through untouched, only presence is required.
type CustomizationType string

const (
	CustomizationTypeTopping CustomizationType = "topping"
	CustomizationTypeSide    CustomizationType = "side"
	CustomizationTypeSize    CustomizationType = "size"
	CustomizationTypeCrust   CustomizationType = "crust"
	CustomizationTypeBread   CustomizationType = "bread"
	CustomizationTypeSauce   CustomizationType = "sauce"
	CustomizationTypeBase    CustomizationType = "base"
)

// String implements fmt.Stringer.
func (c CustomizationType) String() string {
	return string(c)
}
