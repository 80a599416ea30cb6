package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginFormToRequest(t *testing.T) {
	t.Run("trims username and broker", func(t *testing.T) {
		req, err := LoginForm{Username: " alice ", Password: " secret ", Broker: " TAVANA"}.ToRequest()
		require.NoError(t, err)

		assert.Equal(t, LoginRequest{Username: "alice", Password: " secret ", Broker: BrokerTavana}, req)
	})

	t.Run("unknown broker is left to the backend", func(t *testing.T) {
		req, err := LoginForm{Username: "a", Password: "b", Broker: "x"}.ToRequest()
		require.NoError(t, err)
		assert.Equal(t, BrokerName("x"), req.Broker)
		assert.False(t, req.Broker.IsKnown())
	})

	t.Run("required fields", func(t *testing.T) {
		_, err := LoginForm{Password: "b", Broker: "FAKE"}.ToRequest()
		assert.ErrorIs(t, err, UsernameRequiredErr)

		_, err = LoginForm{Username: "a", Broker: "FAKE"}.ToRequest()
		assert.ErrorIs(t, err, PasswordRequiredErr)

		_, err = LoginForm{Username: "a", Password: "b"}.ToRequest()
		assert.ErrorIs(t, err, BrokerRequiredErr)
	})
}

func TestAccountSummaryLabel(t *testing.T) {
	assert.Equal(t, "alice | TAVANA", AccountSummary{Username: "alice", Broker: BrokerTavana}.Label())
}

func TestAsClientError(t *testing.T) {
	assert.Nil(t, AsClientError(nil))

	validation := NewValidationError(IsinRequiredErr)
	assert.Same(t, validation, AsClientError(validation))
	assert.ErrorIs(t, validation, IsinRequiredErr)

	other := AsClientError(assert.AnError)
	assert.Equal(t, ErrorKindUnknown, other.Kind)
	assert.ErrorIs(t, other, assert.AnError)
}
