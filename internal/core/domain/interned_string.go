package domain

import "unique"

// InternedString is a value object that wraps a unique.Handle[string].
// Package names, versions and store paths repeat heavily across sets,
// overlays and lockfiles; interning keeps one canonical copy of each.
type InternedString struct {
	h unique.Handle[string]
}

// Intern creates a new InternedString from a string.
func Intern(s string) InternedString {
	return InternedString{
		h: unique.Make(s),
	}
}

// String returns the underlying string value. The zero value reports "".
func (is InternedString) String() string {
	if is.IsZero() {
		return ""
	}
	return is.h.Value()
}

// IsZero reports whether the value is the zero InternedString.
// Note that Intern("") is NOT the zero value; it is an interned empty string.
func (is InternedString) IsZero() bool {
	var zero unique.Handle[string]
	return is.h == zero
}

// MarshalText implements encoding.TextMarshaler.
func (is InternedString) MarshalText() ([]byte, error) {
	return []byte(is.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// It creates a new handle from the provided text.
func (is *InternedString) UnmarshalText(text []byte) error {
	is.h = unique.Make(string(text))
	return nil
}
