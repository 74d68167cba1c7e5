// Package menu turns a model's free-form reply into a canonical Menu.
//
// The pipeline is Extract -> Sanitize -> strict decode -> Normalize. Every
// failure along the way collapses to "no menu"; callers that need the reason
// use Parse and inspect the sentinel errors.
package menu

import "fmt"

// Unit selects which amount of an Ingredient to display.
type Unit string

const (
	UnitMetric Unit = "metric"
	UnitUS     Unit = "us"
)

// ParseUnit parses "metric" or "us".
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case UnitMetric:
		return UnitMetric, nil
	case UnitUS:
		return UnitUS, nil
	default:
		return "", fmt.Errorf("unknown unit %q", s)
	}
}

// Ingredient is one line of a dish's ingredient list. MetricAmount and
// USAmount are always both set; when the reply carried a single amount it is
// copied into both fields.
type Ingredient struct {
	Item         string `json:"item"`
	MetricAmount string `json:"metricAmount"`
	USAmount     string `json:"usAmount"`
	Section      string `json:"section,omitempty"`
}

// Amount returns the amount for the requested unit system.
func (i Ingredient) Amount(u Unit) string {
	if u == UnitUS {
		return i.USAmount
	}
	return i.MetricAmount
}

// Dish is a single recipe. Name is never empty.
type Dish struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []string     `json:"steps"`
}

// Menu is the canonical output. Mains and Sides are never nil.
type Menu struct {
	Title string `json:"title,omitempty"`
	Mains []Dish `json:"mains"`
	Sides []Dish `json:"sides"`
}

// NewMenu returns an empty menu with both sections allocated.
func NewMenu() *Menu {
	return &Menu{
		Mains: []Dish{},
		Sides: []Dish{},
	}
}

// Section names one of the two dish lists of a Menu.
type Section int

const (
	SectionMains Section = iota
	SectionSides
)

// Dishes returns the dish list for the given section.
func (m *Menu) Dishes(s Section) []Dish {
	if s == SectionSides {
		return m.Sides
	}
	return m.Mains
}

// Disclosure tracks which dish cards are expanded. State is keyed by list
// position so dishes sharing a name toggle independently.
type Disclosure struct {
	Mains []bool `json:"mains"`
	Sides []bool `json:"sides"`
}

// NewDisclosure returns all-collapsed state sized to m.
func NewDisclosure(m *Menu) *Disclosure {
	d := &Disclosure{Mains: []bool{}, Sides: []bool{}}
	if m != nil {
		d.Mains = make([]bool, len(m.Mains))
		d.Sides = make([]bool, len(m.Sides))
	}
	return d
}

func (d *Disclosure) states(s Section) []bool {
	if s == SectionSides {
		return d.Sides
	}
	return d.Mains
}

// Toggle flips the card at index i. Out-of-range indexes are ignored.
func (d *Disclosure) Toggle(s Section, i int) {
	states := d.states(s)
	if i < 0 || i >= len(states) {
		return
	}
	states[i] = !states[i]
}

// IsOpen reports whether the card at index i is expanded.
func (d *Disclosure) IsOpen(s Section, i int) bool {
	states := d.states(s)
	if i < 0 || i >= len(states) {
		return false
	}
	return states[i]
}

// Reset collapses every card.
func (d *Disclosure) Reset() {
	clear(d.Mains)
	clear(d.Sides)
}
