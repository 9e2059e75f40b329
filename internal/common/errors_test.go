package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	wrapped := NewUserError("could not generate report", fmt.Errorf("open: %w", ErrLedgerMissing))

	assert.Equal(t, "could not generate report: open: ledger file missing", wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrLedgerMissing)

	bare := NewUserError("nothing underneath", nil)
	assert.Equal(t, "nothing underneath", bare.Error())

	var userErr *UserError
	assert.True(t, errors.As(wrapped, &userErr))
	assert.Equal(t, "could not generate report", userErr.UserMessage)
}
