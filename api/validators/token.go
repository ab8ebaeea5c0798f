package validators

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidSessionID = errors.New("invalid session id")

// ParseSessionID validates the opaque session handle sent in X-Session-Id.
func ParseSessionID(raw string) (uuid.UUID, error) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return uuid.Nil, ErrInvalidSessionID
	}
	id, err := uuid.Parse(token)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidSessionID
	}
	return id, nil
}
