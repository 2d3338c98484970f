package directory

import (
	"fmt"
	"strings"
)

const (
	TypeVerified   = "verified"
	TypeUnverified = "unverified"
)

// IsVerified reports whether the contact email has been verified. An empty
// address never counts as verified.
func IsVerified(dto *ContactEmailDTO) (bool, error) {
	if strings.TrimSpace(dto.Value) == "" {
		return false, nil
	}
	switch dto.Type {
	case TypeVerified:
		return true, nil
	case TypeUnverified:
		return false, nil
	default:
		return false, fmt.Errorf("unknown contact email type %q", dto.Type)
	}
}
