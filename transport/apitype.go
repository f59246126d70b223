package transport

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAPIType is returned when an API variant label is not recognised.
var ErrInvalidAPIType = errors.New("invalid api type")

// APIType selects one of the authentication conventions understood by the API.
// The zero value means "not set" and defers to the configured default.
type APIType int

const (
	APITypeUnset APIType = iota
	APITypeOpenAI
	APITypeAzure
	APITypeAzureAD
)

// ParseAPIType converts a label such as "open_ai", "azure" or "azure_ad" to an APIType.
// Matching is case-insensitive. An empty label yields APITypeUnset.
func ParseAPIType(label string) (APIType, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "":
		return APITypeUnset, nil
	case "azure":
		return APITypeAzure, nil
	case "azure_ad", "azuread":
		return APITypeAzureAD, nil
	case "open_ai", "apacai":
		return APITypeOpenAI, nil
	}
	return APITypeUnset, fmt.Errorf("%w: %q, select one of the supported API types: 'azure', 'azure_ad', 'open_ai'", ErrInvalidAPIType, label)
}

func (t APIType) String() string {
	switch t {
	case APITypeOpenAI:
		return "open_ai"
	case APITypeAzure:
		return "azure"
	case APITypeAzureAD:
		return "azure_ad"
	}
	return ""
}

// Or returns t, or fallback when t is unset.
func (t APIType) Or(fallback APIType) APIType {
	if t == APITypeUnset {
		return fallback
	}
	return t
}

// IsAzure reports whether the variant uses Azure style routing (api-version query parameter).
func (t APIType) IsAzure() bool {
	return t == APITypeAzure || t == APITypeAzureAD
}

// AuthHeader returns the header name and value that carry key for this variant.
// Bearer tokens are used for open_ai and azure_ad, the "api-key" header for azure.
func (t APIType) AuthHeader(key string) (string, string) {
	if t == APITypeAzure {
		return "api-key", key
	}
	return "Authorization", "Bearer " + key
}

func (t APIType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *APIType) UnmarshalText(text []byte) error {
	v, err := ParseAPIType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
