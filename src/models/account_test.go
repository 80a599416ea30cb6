package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountSummary(t *testing.T) {
	t.Run("label", func(t *testing.T) {
		account := AccountSummary{Username: "alice", Broker: "TAVANA"}
		assert.Equal(t, "alice | TAVANA", account.Label())
	})

	t.Run("decodes the accounts response", func(t *testing.T) {
		var accounts []AccountSummary
		err := json.Unmarshal([]byte(`[{"username":"alice","broker":"TAVANA"},{"username":"bob","broker":"FAKE"}]`), &accounts)
		require.NoError(t, err)

		require.Len(t, accounts, 2)
		assert.Equal(t, "bob | FAKE", accounts[1].Label())
	})
}
