package exec

import (
	"bytes"
	"encoding/json"
)

// OrderedMap is a response object whose keys marshal in selection order.
type OrderedMap struct {
	keys   []string
	values map[string]interface{}
}

func NewOrderedMap(capacity int) *OrderedMap {
	return &OrderedMap{
		keys:   make([]string, 0, capacity),
		values: make(map[string]interface{}, capacity),
	}
}

func (m *OrderedMap) Set(key string, value interface{}) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *OrderedMap) Get(key string) (interface{}, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *OrderedMap) Len() int { return len(m.keys) }

func (m *OrderedMap) Keys() []string { return m.keys }

func (m *OrderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
