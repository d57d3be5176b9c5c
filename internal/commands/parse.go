package commands

import (
	"strconv"
	"strings"
)

// Fields holds the parsed key/value pairs of a command. Keys are lower-cased.
type Fields map[string]string

// Parse splits "Key: Val, Key2: Val2" into Fields. Parts without a colon are
// ignored and only the first colon of a part separates key from value.
func Parse(text string) Fields {
	fields := make(Fields)
	for _, part := range strings.Split(text, ",") {
		key, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		fields[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(val)
	}
	return fields
}

// Get returns the value for key, matched case-insensitively.
func (f Fields) Get(key string) (string, bool) {
	v, ok := f[strings.ToLower(key)]
	return v, ok
}

// Int returns the integer value for key.
func (f Fields) Int(key string) (int, bool) {
	v, ok := f.Get(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Has reports whether every key is present.
func (f Fields) Has(keys ...string) bool {
	for _, k := range keys {
		if _, ok := f.Get(k); !ok {
			return false
		}
	}
	return true
}
