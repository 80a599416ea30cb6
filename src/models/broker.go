package models

type BrokerName string

const (
	BrokerTavana BrokerName = "TAVANA"
	BrokerFake   BrokerName = "FAKE"
)

// KnownBrokers lists the brokers offered in the login form.
// The backend is the authority on which names are accepted.
func KnownBrokers() []BrokerName {
	return []BrokerName{BrokerTavana, BrokerFake}
}

func (b BrokerName) IsKnown() bool {
	for _, known := range KnownBrokers() {
		if b == known {
			return true
		}
	}

	return false
}
