package view

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/jiaming2012/broker-client/src/models"
)

func TestSetAccounts(t *testing.T) {
	t.Run("one option per account in order", func(t *testing.T) {
		var accounts []models.AccountSummary
		for i := 0; i < 5; i++ {
			accounts = append(accounts, models.AccountSummary{Username: fmt.Sprintf("user%d", 5-i), Broker: models.BrokerTavana})
		}

		page := NewOrderPage()
		page.SetAccounts(accounts)

		assert.Len(t, page.Accounts, len(accounts))
		for i, account := range accounts {
			assert.Equal(t, Option{Value: account.Username, Label: account.Username + " | TAVANA"}, page.Accounts[i])
		}
		assert.True(t, page.AccountsLoaded)
		assert.Equal(t, "user5", page.SelectedAccount())
	})

	t.Run("empty list", func(t *testing.T) {
		page := NewOrderPage()
		page.SetAccounts(nil)

		assert.Empty(t, page.Accounts)
		assert.True(t, page.AccountsLoaded)
		assert.Equal(t, "", page.SelectedAccount())
	})

	t.Run("keeps the selected account", func(t *testing.T) {
		page := NewOrderPage()
		page.Form.Account = "bob"
		page.SetAccounts([]models.AccountSummary{{Username: "amy"}, {Username: "bob"}})

		assert.Equal(t, "bob", page.SelectedAccount())
	})
}

func TestReplaceRows(t *testing.T) {
	page := NewOrderPage()

	page.ReplaceRows([]models.StockResult{
		{Label: "FOLD", Value: 1520, Isin: "IRO1FOLD0001"},
		{Label: "KHODRO", Value: 2310, Isin: "IRO1IKCO0001"},
	})
	assert.Len(t, page.Rows, 2)

	page.ReplaceRows([]models.StockResult{{Label: "SHEPNA", Value: 640.5, Isin: "IRO1PNES0001"}})

	want := []StockRow{{Label: "SHEPNA", Value: 640.5, Isin: "IRO1PNES0001"}}
	if diff := cmp.Diff(want, page.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}

	page.ReplaceRows(nil)
	assert.Empty(t, page.Rows)
}

func TestNewLoginPage(t *testing.T) {
	page := NewLoginPage()

	want := []Option{{Value: "TAVANA", Label: "TAVANA"}, {Value: "FAKE", Label: "FAKE"}}
	if diff := cmp.Diff(want, page.Brokers); diff != "" {
		t.Errorf("brokers mismatch (-want +got):\n%s", diff)
	}
}

func TestSetBalance(t *testing.T) {
	page := NewOrderPage()
	page.SetBalance("alice", 125000000)

	assert.Equal(t, "alice: 125000000 IRR", page.Balance)
}

func TestResults(t *testing.T) {
	page := NewOrderPage()
	in := []models.StockResult{
		{Label: "FOLD", Value: 1200, Isin: "IRO1FOLD0001"},
		{Label: "KHODRO", Value: 2310, Isin: "IRO1IKCO0001"},
	}
	page.ReplaceRows(in)

	if diff := cmp.Diff(in, page.Results()); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}
