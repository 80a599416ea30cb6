package view

import (
	"fmt"

	"github.com/jiaming2012/broker-client/src/models"
)

type Option struct {
	Value string
	Label string
}

type StockRow struct {
	Label string
	Value float64
	Isin  string
}

// LoginPage is the state behind the login form.
// The password is never kept.
type LoginPage struct {
	Username string
	Broker   string
	Brokers  []Option
	Message  Message
}

func NewLoginPage() *LoginPage {
	page := &LoginPage{}
	for _, broker := range models.KnownBrokers() {
		page.Brokers = append(page.Brokers, Option{Value: string(broker), Label: string(broker)})
	}

	return page
}

// OrderPage is the state behind the order form.
type OrderPage struct {
	Accounts       []Option
	AccountsLoaded bool
	SearchLabel    string
	Rows           []StockRow
	Form           models.OrderForm
	TotalPrice     string
	Balance        string
	Message        Message
}

func NewOrderPage() *OrderPage {
	return &OrderPage{
		TotalPrice: TotalPricePlaceholder,
	}
}

// SetAccounts replaces the account options, one per account in the given order.
func (p *OrderPage) SetAccounts(accounts []models.AccountSummary) {
	options := make([]Option, 0, len(accounts))
	for _, account := range accounts {
		options = append(options, Option{
			Value: account.Username,
			Label: account.Label(),
		})
	}

	p.Accounts = options
	p.AccountsLoaded = true

	if p.Form.Account == "" && len(options) > 0 {
		p.Form.Account = options[0].Value
	}
}

// ReplaceRows drops the rows of any previous search before adding the new results.
func (p *OrderPage) ReplaceRows(results []models.StockResult) {
	rows := make([]StockRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, StockRow{Label: r.Label, Value: r.Value, Isin: r.Isin})
	}

	p.Rows = rows
}

func (p *OrderPage) ClearRows() {
	p.Rows = nil
}

func (p *OrderPage) SetBalance(username string, balance float64) {
	p.Balance = fmt.Sprintf("%s: %s IRR", username, FormatNumber(balance))
}

func (p *OrderPage) SelectedAccount() string {
	return p.Form.Account
}

// Results returns the current rows in search order, for export.
func (p *OrderPage) Results() []models.StockResult {
	results := make([]models.StockResult, 0, len(p.Rows))
	for _, row := range p.Rows {
		results = append(results, models.StockResult{Label: row.Label, Value: row.Value, Isin: row.Isin})
	}

	return results
}
