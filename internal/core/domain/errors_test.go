package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrQueryTooShort", ErrQueryTooShort},
		{"ErrNoSearchers", ErrNoSearchers},
		{"ErrDuplicateDomain", ErrDuplicateDomain},
		{"ErrAllDomainsFailed", ErrAllDomainsFailed},
		{"ErrSearchPanic", ErrSearchPanic},
		{"ErrNetwork", ErrNetwork},
		{"ErrServer", ErrServer},
		{"ErrTimeout", ErrTimeout},
		{"ErrRateLimited", ErrRateLimited},
		{"ErrNoOpener", ErrNoOpener},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Wrapping tests that wrapped backend errors keep their class
func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("invoice search: %w", ErrTimeout)

	assert.True(t, errors.Is(wrapped, ErrTimeout))
	assert.False(t, errors.Is(wrapped, ErrNetwork))
	assert.False(t, errors.Is(wrapped, ErrServer))
}

// TestErrors_Join tests the aggregate failure shape
func TestErrors_Join(t *testing.T) {
	err := errors.Join(ErrAllDomainsFailed, fmt.Errorf("client: %w", ErrNetwork))

	assert.True(t, errors.Is(err, ErrAllDomainsFailed))
	assert.True(t, errors.Is(err, ErrNetwork))
	assert.Contains(t, err.Error(), "client: network error")
}
