package crx

// FormatError is returned when the input is not a recognised CRX or ZIP container.
//
// Use errors.Is with one of the sentinel values (ErrTooShort, ErrInvalidMagic, etc.) to distinguish between the
// reasons.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "crx: " + e.Reason
}

// Is reports whether target is a *FormatError with the same reason.
func (e *FormatError) Is(target error) bool {
	t, ok := target.(*FormatError)
	return ok && t.Reason == e.Reason
}

var (
	// ErrTooShort is returned when the buffer cannot hold the 4-byte magic.
	ErrTooShort = &FormatError{Reason: "buffer too short"}
	// ErrInvalidMagic is returned when the buffer starts with neither "Cr24" nor "PK\x03\x04".
	ErrInvalidMagic = &FormatError{Reason: "invalid magic: not a CRX or ZIP"}
	// ErrUnsupportedVersion is returned for CRX versions other than 2 and 3.
	ErrUnsupportedVersion = &FormatError{Reason: "unsupported CRX version"}
	// ErrHeaderTooLarge is returned when the declared header lengths point past the end of the buffer.
	ErrHeaderTooLarge = &FormatError{Reason: "declared header length exceeds buffer size"}
)
