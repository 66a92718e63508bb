package domain

import "strings"

// ErrorKind discriminates what an API-supplied error entry refers to.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindField             // a specific input field
	KindUser              // the acting user/account
)

// ParseErrorKind decodes the backend "type" string. Matching is case-insensitive.
func ParseErrorKind(s string) ErrorKind {
	switch strings.ToLower(s) {
	case "field":
		return KindField
	case "user":
		return KindUser
	default:
		return KindUnknown
	}
}

func (k ErrorKind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindUser:
		return "user"
	default:
		return "unknown"
	}
}

// FieldError is one entry of the backend's error list.
type FieldError struct {
	Field   string
	Message string
	Kind    ErrorKind
}

// LeadField returns the first dot-separated segment of Field
// ("location.city" -> "location").
func (e FieldError) LeadField() string {
	lead, _, _ := strings.Cut(e.Field, ".")
	return lead
}
