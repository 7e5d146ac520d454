package frame

import "iter"

// Header is an insertion-ordered set of header fields. Re-setting an
// existing name overwrites the value in place.
//
// Copies of a Header share the same fields, like http.Header; use
// Clone for an independent copy.
type Header struct {
	*headerData
}

type headerData struct {
	names  []string
	values map[string]string
}

// NewHeader builds a Header from name/value pairs. A trailing name
// without a value is set to the empty string.
func NewHeader(pairs ...string) Header {
	h := Header{&headerData{values: make(map[string]string, len(pairs)/2+1)}}
	for i := 0; i < len(pairs); i += 2 {
		value := ""
		if i+1 < len(pairs) {
			value = pairs[i+1]
		}
		h.Set(pairs[i], value)
	}
	return h
}

func (h Header) Get(name string) (value string, ok bool) {
	if h.headerData == nil {
		return "", false
	}
	value, ok = h.values[name]
	return
}

func (h Header) Contains(name string) bool {
	_, ok := h.Get(name)
	return ok
}

// Set allocates the fields of a zero Header on first use; copies taken
// before that point do not observe the allocation.
func (h *Header) Set(name, value string) {
	if h.headerData == nil {
		h.headerData = &headerData{values: make(map[string]string, 8)}
	}
	if _, ok := h.values[name]; !ok {
		h.names = append(h.names, name)
	}
	h.values[name] = value
}

// Del removes name, keeping the relative order of the remaining fields.
func (h Header) Del(name string) {
	if h.headerData == nil {
		return
	}
	if _, ok := h.values[name]; !ok {
		return
	}
	delete(h.values, name)
	for i, n := range h.names {
		if n == name {
			h.names = append(h.names[:i], h.names[i+1:]...)
			break
		}
	}
}

func (h Header) Len() int {
	if h.headerData == nil {
		return 0
	}
	return len(h.names)
}

// All yields fields in insertion order.
func (h Header) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if h.headerData == nil {
			return
		}
		for _, name := range h.names {
			if !yield(name, h.values[name]) {
				return
			}
		}
	}
}

// Names returns a copy of the field names in insertion order.
func (h Header) Names() []string {
	out := make([]string, h.Len())
	if h.headerData != nil {
		copy(out, h.names)
	}
	return out
}

func (h Header) Clone() Header {
	out := Header{&headerData{
		names:  make([]string, h.Len()),
		values: make(map[string]string, h.Len()),
	}}
	if h.headerData == nil {
		return out
	}
	copy(out.names, h.names)
	for k, v := range h.values {
		out.values[k] = v
	}
	return out
}
