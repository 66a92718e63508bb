package errnotify

import (
	"encoding/json"
	"fmt"

	"github.com/go-api-errnotify/internal/domain"
	"github.com/go-api-errnotify/internal/pkg/validate"
)

// apiError mirrors one entry of the backend error schema. Only Type is
// mandatory, and only on the first entry, which drives classification.
type apiError struct {
	Field   string  `json:"field"`
	Message string  `json:"message"`
	Type    *string `json:"type" validate:"required"`
}

type apiErrorBody struct {
	Errors []json.RawMessage `json:"errors" validate:"required,min=1"`
}

// ParseFieldErrors decodes an error body of the form
// {"errors":[{"field":..., "message":..., "type":...}]}.
//
// The list must be non-empty and its first entry must be an object with a
// string "type". Later entries are mapped leniently: anything that does not
// decode becomes a zero FieldError and a missing type becomes KindUnknown.
// Failures wrap domain.ErrMalformedErrorBody.
func ParseFieldErrors(body []byte) ([]domain.FieldError, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("empty body: %w", domain.ErrMalformedErrorBody)
	}
	var raw apiErrorBody
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode: %v: %w", err, domain.ErrMalformedErrorBody)
	}
	if err := validate.Struct(raw); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrMalformedErrorBody)
	}

	var first apiError
	if err := json.Unmarshal(raw.Errors[0], &first); err != nil {
		return nil, fmt.Errorf("decode first entry: %v: %w", err, domain.ErrMalformedErrorBody)
	}
	if err := validate.Struct(first); err != nil {
		return nil, fmt.Errorf("first entry: %v: %w", err, domain.ErrMalformedErrorBody)
	}

	out := make([]domain.FieldError, len(raw.Errors))
	out[0] = first.toDomain()
	for i, entry := range raw.Errors[1:] {
		var e apiError
		if err := json.Unmarshal(entry, &e); err != nil {
			continue
		}
		out[i+1] = e.toDomain()
	}
	return out, nil
}

func (e apiError) toDomain() domain.FieldError {
	fe := domain.FieldError{Field: e.Field, Message: e.Message}
	if e.Type != nil {
		fe.Kind = domain.ParseErrorKind(*e.Type)
	}
	return fe
}
