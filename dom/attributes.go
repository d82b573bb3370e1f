package dom

// Attribute is a single namespaced attribute, as carried on foreign (SVG or
// MathML) elements after adjustment (spec.md §4.4.6).
type Attribute struct {
	Namespace string
	Name      string
	Value     string
}

// attrKey identifies an attribute by namespace and name; two attributes with the
// same local name but different namespaces (e.g. a plain "href" and an
// "xlink:href") are distinct.
type attrKey struct {
	namespace string
	name      string
}

// Attributes is an insertion-order-preserving attribute map. Order matters:
// it is observable in serialization and in html5lib-test tree dumps before
// the caller's own sort (spec.md §6).
type Attributes struct {
	order []attrKey
	vals  map[attrKey]string
}

func NewAttributes() *Attributes {
	return &Attributes{vals: make(map[attrKey]string)}
}

// Get returns the value of a plain (no-namespace) attribute.
func (a *Attributes) Get(name string) (string, bool) {
	v, ok := a.vals[attrKey{name: name}]
	return v, ok
}

// Set inserts or overwrites a plain attribute, preserving the original
// insertion position on overwrite.
func (a *Attributes) Set(name, value string) {
	a.SetNS("", name, value)
}

// GetNS returns the value of a namespaced attribute.
func (a *Attributes) GetNS(namespace, name string) (string, bool) {
	v, ok := a.vals[attrKey{namespace: namespace, name: name}]
	return v, ok
}

// HasNS reports whether a namespaced attribute is present.
func (a *Attributes) HasNS(namespace, name string) bool {
	_, ok := a.vals[attrKey{namespace: namespace, name: name}]
	return ok
}

// SetNS inserts or overwrites a namespaced attribute.
func (a *Attributes) SetNS(namespace, name, value string) {
	k := attrKey{namespace: namespace, name: name}
	if _, exists := a.vals[k]; !exists {
		a.order = append(a.order, k)
	}
	a.vals[k] = value
}

// All returns every attribute in insertion order.
func (a *Attributes) All() []Attribute {
	out := make([]Attribute, 0, len(a.order))
	for _, k := range a.order {
		out = append(out, Attribute{Namespace: k.namespace, Name: k.name, Value: a.vals[k]})
	}
	return out
}

// Len reports the number of attributes.
func (a *Attributes) Len() int { return len(a.order) }
