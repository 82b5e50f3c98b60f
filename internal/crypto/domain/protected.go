package domain

// ProtectedValue is the in-memory representation of a protected attribute
// after a read from storage.
//
// A value is either readable plaintext or explicitly unreadable (its stored
// blob failed authenticated decryption). Unreadable is distinct from empty:
// an empty plaintext is a readable value whose content happens to be "".
// There is deliberately no accessor that substitutes the stored ciphertext
// for a failed decryption.
type ProtectedValue struct {
	value      string
	unreadable bool
}

// NewProtectedValue returns a readable protected value.
func NewProtectedValue(plaintext string) ProtectedValue {
	return ProtectedValue{value: plaintext}
}

// UnreadableValue returns the marker for an attribute whose blob failed to decrypt.
func UnreadableValue() ProtectedValue {
	return ProtectedValue{unreadable: true}
}

// Plaintext returns the decrypted value and whether it is readable.
func (p ProtectedValue) Plaintext() (string, bool) {
	if p.unreadable {
		return "", false
	}
	return p.value, true
}

// Unreadable reports whether the attribute failed decryption.
func (p ProtectedValue) Unreadable() bool {
	return p.unreadable
}

// String implements fmt.Stringer without exposing the plaintext, so protected
// values cannot leak through formatted logs by accident.
func (p ProtectedValue) String() string {
	if p.unreadable {
		return "[unreadable]"
	}
	return "[protected]"
}
