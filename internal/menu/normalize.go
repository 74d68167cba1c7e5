package menu

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Shape identifies which reply layout a payload follows.
type Shape int

const (
	ShapeUnknown Shape = iota
	// ShapeSections is {"mains": [...], "sides": [...]} with
	// {item, metric, us} ingredient triples.
	ShapeSections
	// ShapePairs is [{"menu": ..., "main": ..., "side": ...}, ...] with
	// ingredient name -> amount mappings.
	ShapePairs
	// ShapeTitledGrid is {"menu": title, "main": [...], "side": [...]} with
	// {section, items} ingredient groups.
	ShapeTitledGrid
)

func (s Shape) String() string {
	switch s {
	case ShapeSections:
		return "sections"
	case ShapePairs:
		return "pairs"
	case ShapeTitledGrid:
		return "titled-grid"
	default:
		return "unknown"
	}
}

const (
	fallbackMainName = "Main Dish"
	fallbackSideName = "Side Dish"
)

// DetectShape reports the first shape the payload structurally matches.
func DetectShape(payload []byte) Shape {
	if !gjson.ValidBytes(payload) {
		return ShapeUnknown
	}
	return detect(gjson.ParseBytes(payload))
}

// detect checks the most specific shape first so a richer payload is never
// read as a looser one.
func detect(root gjson.Result) Shape {
	switch {
	case root.IsObject() && root.Get("mains").IsArray() && root.Get("sides").IsArray():
		return ShapeSections
	case isPairs(root):
		return ShapePairs
	case root.IsObject() && root.Get("main").IsArray() && root.Get("side").IsArray():
		return ShapeTitledGrid
	default:
		return ShapeUnknown
	}
}

func isPairs(root gjson.Result) bool {
	if !root.IsArray() {
		return false
	}
	elems := root.Array()
	if len(elems) == 0 {
		return false
	}
	for _, e := range elems {
		if !e.IsObject() || !e.Get("main").Exists() || !e.Get("side").Exists() {
			return false
		}
	}
	return true
}

// Normalize maps a valid JSON payload onto a Menu. It returns
// ErrUnrecognizedShape, and no menu, when the payload fits none of the known
// shapes or any dish inside it has an unexpected type.
func Normalize(payload []byte) (*Menu, error) {
	if !gjson.ValidBytes(payload) {
		return nil, ErrDecode
	}
	root := gjson.ParseBytes(payload)

	var (
		m  *Menu
		ok bool
	)
	switch detect(root) {
	case ShapeSections:
		m, ok = fromSections(root)
	case ShapePairs:
		m, ok = fromPairs(root)
	case ShapeTitledGrid:
		m, ok = fromTitledGrid(root)
	}
	if !ok {
		return nil, ErrUnrecognizedShape
	}
	return m, nil
}

func fromSections(root gjson.Result) (*Menu, bool) {
	m := NewMenu()
	m.Title = stringField(root, "title")

	var ok bool
	if m.Mains, ok = dishList(root.Get("mains"), "name", fallbackMainName); !ok {
		return nil, false
	}
	if m.Sides, ok = dishList(root.Get("sides"), "name", fallbackSideName); !ok {
		return nil, false
	}
	return m, true
}

func fromTitledGrid(root gjson.Result) (*Menu, bool) {
	m := NewMenu()
	m.Title = stringField(root, "menu")

	var ok bool
	if m.Mains, ok = dishList(root.Get("main"), "title", fallbackMainName); !ok {
		return nil, false
	}
	if m.Sides, ok = dishList(root.Get("side"), "title", fallbackSideName); !ok {
		return nil, false
	}
	return m, true
}

func fromPairs(root gjson.Result) (*Menu, bool) {
	m := NewMenu()
	for _, pair := range root.Array() {
		label := stringField(pair, "menu")

		main, ok := pairDish(pair.Get("main"), label, fallbackMainName)
		if !ok {
			return nil, false
		}
		side, ok := pairDish(pair.Get("side"), label, fallbackSideName)
		if !ok {
			return nil, false
		}
		m.Mains = append(m.Mains, main)
		m.Sides = append(m.Sides, side)
	}
	return m, true
}

func dishList(list gjson.Result, nameKey, fallback string) ([]Dish, bool) {
	items := list.Array()
	dishes := make([]Dish, 0, len(items))
	for _, item := range items {
		switch {
		case item.Type == gjson.String:
			dishes = append(dishes, newDish(item.Str, fallback))
		case item.IsObject():
			d := newDish(stringField(item, nameKey), fallback)
			d.Description = stringField(item, "description")
			d.Ingredients = ingredientList(item.Get("ingredients"))
			d.Steps = stepList(item.Get("steps"))
			dishes = append(dishes, d)
		default:
			return nil, false
		}
	}
	return dishes, true
}

func pairDish(v gjson.Result, label, fallback string) (Dish, bool) {
	switch {
	case v.Type == gjson.String:
		d := newDish(v.Str, fallback)
		d.Description = label
		return d, true
	case v.IsObject():
		d := newDish(stringField(v, "dish"), fallback)
		d.Description = label
		d.Ingredients = ingredientMapping(v.Get("ingredients"))
		d.Steps = stepList(v.Get("steps"))
		return d, true
	default:
		return Dish{}, false
	}
}

func newDish(name, fallback string) Dish {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fallback
	}
	return Dish{
		Name:        name,
		Ingredients: []Ingredient{},
		Steps:       []string{},
	}
}

// ingredientMapping reads {"beef": "300g", ...} in document order. The single
// amount fills both unit fields.
func ingredientMapping(v gjson.Result) []Ingredient {
	out := []Ingredient{}
	if !v.IsObject() {
		return out
	}
	v.ForEach(func(key, value gjson.Result) bool {
		amount := scalarText(value)
		out = append(out, Ingredient{
			Item:         key.String(),
			MetricAmount: amount,
			USAmount:     amount,
		})
		return true
	})
	return out
}

// ingredientList reads an array whose elements are {item, metric, us}
// triples, {section, items} groups or bare strings.
func ingredientList(v gjson.Result) []Ingredient {
	out := []Ingredient{}
	if !v.IsArray() {
		return out
	}
	for _, e := range v.Array() {
		switch {
		case e.Type == gjson.String:
			out = append(out, Ingredient{Item: e.Str})
		case e.IsObject() && e.Get("items").IsArray():
			section := stringField(e, "section")
			for _, it := range e.Get("items").Array() {
				var ing Ingredient
				switch {
				case it.Type == gjson.String:
					ing = Ingredient{Item: it.Str}
				case it.IsObject():
					ing = triple(it)
				default:
					continue
				}
				ing.Section = section
				out = append(out, ing)
			}
		case e.IsObject():
			out = append(out, triple(e))
		}
	}
	return out
}

func triple(v gjson.Result) Ingredient {
	ing := Ingredient{
		Item:         stringField(v, "item"),
		MetricAmount: scalarText(v.Get("metric")),
		USAmount:     scalarText(v.Get("us")),
	}
	if ing.MetricAmount == "" {
		ing.MetricAmount = ing.USAmount
	}
	if ing.USAmount == "" {
		ing.USAmount = ing.MetricAmount
	}
	return ing
}

func stepList(v gjson.Result) []string {
	out := []string{}
	if !v.IsArray() {
		return out
	}
	for _, s := range v.Array() {
		if s.Type != gjson.String || strings.TrimSpace(s.Str) == "" {
			continue
		}
		out = append(out, s.Str)
	}
	return out
}

func stringField(v gjson.Result, key string) string {
	f := v.Get(key)
	if f.Type != gjson.String {
		return ""
	}
	return f.Str
}

// scalarText renders strings as-is and numbers by their literal text, so an
// amount written as 2 reads "2".
func scalarText(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number:
		return v.Raw
	default:
		return ""
	}
}
