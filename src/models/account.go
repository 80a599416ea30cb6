package models

import "fmt"

type AccountSummary struct {
	Username string     `json:"username" csv:"username"`
	Broker   BrokerName `json:"broker" csv:"broker"`
}

// Label is the text shown for the account in a selection control.
func (a AccountSummary) Label() string {
	return fmt.Sprintf("%s | %s", a.Username, a.Broker)
}

type BalanceDTO struct {
	Balance float64 `json:"balance"`
}

type MessageDTO struct {
	Message string `json:"message"`
}
