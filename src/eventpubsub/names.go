package eventpubsub

type EventName string

const (
	LoginPageReady EventName = "page:login:ready"
	OrderPageReady EventName = "page:order:ready"
	LoginSubmitted EventName = "login:submitted"
	StockSearch    EventName = "stock:search"
	OrderSubmitted EventName = "order:submitted"
	OrderTotal     EventName = "order:total"
	AccountBalance EventName = "account:balance"
)
