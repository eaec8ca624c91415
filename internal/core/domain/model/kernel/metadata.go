package kernel

// Metadata is the free-form key/value document attached to orders, tickets and
// event records. Values must be JSON-representable.
type Metadata map[string]any

// Clone returns a shallow copy. A nil receiver yields an empty, non-nil map.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge returns a copy of m overlaid with every key of others, in order.
// Later maps win on key collisions.
func (m Metadata) Merge(others ...Metadata) Metadata {
	out := m.Clone()
	for _, other := range others {
		for k, v := range other {
			out[k] = v
		}
	}
	return out
}

// String returns the value under key when it is a non-empty string.
func (m Metadata) String(key string) (string, bool) {
	v, ok := m[key].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
