package graphql

// HeaderField is one request header
type HeaderField struct {
	Name  string
	Value string
}

// String renders the field as a "Name: Value" line
func (f HeaderField) String() string {
	return f.Name + ": " + f.Value
}

// headerSet keeps headers in insertion order. Replacing a value keeps its position.
type headerSet struct {
	names  []string
	values map[string]string
}

func newHeaderSet() *headerSet {
	return &headerSet{values: make(map[string]string)}
}

func (h *headerSet) set(name, value string) {
	if _, ok := h.values[name]; !ok {
		h.names = append(h.names, name)
	}
	h.values[name] = value
}

func (h *headerSet) get(name string) (string, bool) {
	v, ok := h.values[name]
	return v, ok
}

func (h *headerSet) fields() []HeaderField {
	out := make([]HeaderField, 0, len(h.names))
	for _, name := range h.names {
		out = append(out, HeaderField{Name: name, Value: h.values[name]})
	}
	return out
}

func (h *headerSet) clone() *headerSet {
	c := newHeaderSet()
	for _, name := range h.names {
		c.set(name, h.values[name])
	}
	return c
}
