package level

import (
	"sort"
	"strconv"
	"strings"
)

// Properties are the name -> value pairs set on an object.
// TMX stores every value as text, the typed getters convert on read.
type Properties struct {
	values map[string]string
}

// NewProperties returns an empty properties
func NewProperties() *Properties {
	return &Properties{values: map[string]string{}}
}

// newPropertiesFromNode reads <property name=.. value=..> children of a
// <properties> element from map `name`. Later duplicates overwrite earlier
// ones. Both attributes are required.
func newPropertiesFromNode(name string, n *node) (*Properties, error) {
	ps := NewProperties()
	if n == nil {
		return ps, nil
	}
	for _, p := range n.all(tagProperty) {
		if !p.has("name") || !p.has("value") {
			return nil, structureError(name, "property missing name or value")
		}
		ps.Set(p.attrString("name", ""), p.attrString("value", ""))
	}
	return ps, nil
}

// Set a property, replacing any existing value
func (p *Properties) Set(key, value string) {
	p.values[key] = value
}

// Len is the number of properties set
func (p *Properties) Len() int {
	return len(p.values)
}

// Keys returns all property names, sorted
func (p *Properties) Keys() []string {
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a copy of the properties as a plain map
func (p *Properties) Map() map[string]string {
	out := make(map[string]string, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

// Get returns the value of `key` or "" if it isn't set
func (p *Properties) Get(key string) string {
	return p.values[key]
}

func (p *Properties) String(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Int returns `key` parsed as an int. False if it's unset or not a number.
func (p *Properties) Int(key string) (int, bool) {
	v, ok := p.values[key]
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return i, true
}

// Float returns `key` parsed as a float. False if it's unset or not a number.
func (p *Properties) Float(key string) (float64, bool) {
	v, ok := p.values[key]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Bool returns `key` parsed as a bool ("true", "1", "false", "0" ..)
func (p *Properties) Bool(key string) (bool, bool) {
	v, ok := p.values[key]
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, false
	}
	return b, true
}
