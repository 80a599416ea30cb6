package formclient

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/broker-client/src/eventpubsub"
	"github.com/jiaming2012/broker-client/src/models"
	"github.com/jiaming2012/broker-client/src/view"
)

// BrokerApi is the backend as seen by the controller.
type BrokerApi interface {
	Login(ctx context.Context, req models.LoginRequest) models.Result[models.MessageDTO]
	FetchAccounts(ctx context.Context) models.Result[[]models.AccountSummary]
	FetchStocks(ctx context.Context, query models.StockQuery) models.Result[[]models.StockResult]
	SubmitOrder(ctx context.Context, order models.OrderRequest) models.Result[models.MessageDTO]
	FetchBalance(ctx context.Context, username string) models.Result[models.BalanceDTO]
}

// Controller is the one set of handlers for the login and order pages.
// Every handler turns its input into page state; rendering is left to the caller.
type Controller struct {
	api BrokerApi
	loc *time.Location
	now func() time.Time
}

type ControllerOption func(*Controller)

// WithLocation sets the location deadlines without an offset are read in.
func WithLocation(loc *time.Location) ControllerOption {
	return func(c *Controller) {
		c.loc = loc
	}
}

func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) {
		c.now = now
	}
}

func NewController(api BrokerApi, opts ...ControllerOption) *Controller {
	c := &Controller{
		api: api,
		loc: time.Local,
		now: time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Bind subscribes the controller to every page and user action event.
func (c *Controller) Bind(d *eventpubsub.Dispatcher) error {
	handlers := map[eventpubsub.EventName]interface{}{
		eventpubsub.LoginPageReady: c.LoginPageReady,
		eventpubsub.LoginSubmitted: c.Login,
		eventpubsub.OrderPageReady: c.LoadAccounts,
		eventpubsub.StockSearch:    c.SearchStocks,
		eventpubsub.OrderSubmitted: c.SubmitOrder,
		eventpubsub.OrderTotal:     c.CalcTotalPrice,
		eventpubsub.AccountBalance: c.LoadBalance,
	}

	for topic, handler := range handlers {
		if err := d.Subscribe("formclient", topic, handler); err != nil {
			return fmt.Errorf("Controller.Bind: %w", err)
		}
	}

	return nil
}

func (c *Controller) LoginPageReady(ctx context.Context, page *view.LoginPage) {
	page.Message = view.Message{}
}

func (c *Controller) Login(ctx context.Context, page *view.LoginPage, form models.LoginForm) {
	page.Username = form.Username
	page.Broker = form.Broker

	logger := log.WithContext(ctx).WithFields(log.Fields{
		"action":   "login",
		"username": form.Username,
		"broker":   form.Broker,
	})

	req, err := form.ToRequest()
	if err != nil {
		logger.Infof("login form rejected: %v", err)
		page.Message = view.MessageFor(models.NewValidationError(err))
		return
	}

	result := c.api.Login(ctx, req)
	page.Message = view.ResponseMessage(result)

	if result.IsOk() {
		logger.Info("login accepted")
	} else {
		logger.WithFields(log.Fields{"status": result.Status, "kind": result.Err.Kind}).Warnf("login failed: %v", result.Err)
	}
}

// LoadAccounts fills the account selection when the order page becomes ready.
func (c *Controller) LoadAccounts(ctx context.Context, page *view.OrderPage) {
	result := c.api.FetchAccounts(ctx)
	if !result.IsOk() {
		log.WithContext(ctx).WithFields(log.Fields{"action": "accounts", "kind": result.Err.Kind}).Errorf("failed to load accounts: %v", result.Err)
		page.Accounts = nil
		page.AccountsLoaded = false
		page.Message = view.MessageFor(result.Err)
		return
	}

	page.SetAccounts(result.Value)
	log.WithContext(ctx).WithField("action", "accounts").Debugf("loaded %d accounts", len(result.Value))
}

func (c *Controller) SearchStocks(ctx context.Context, page *view.OrderPage, query models.StockQuery) {
	page.SearchLabel = query.Label
	page.ClearRows()

	logger := log.WithContext(ctx).WithFields(log.Fields{"action": "stocks", "label": query.Label})

	query, err := query.Normalize()
	if err != nil {
		page.Message = view.MessageFor(models.NewValidationError(err))
		return
	}

	result := c.api.FetchStocks(ctx, query)
	if !result.IsOk() {
		logger.WithField("kind", result.Err.Kind).Warnf("stock search failed: %v", result.Err)
		page.Message = view.MessageFor(result.Err)
		return
	}

	page.ReplaceRows(result.Value)
	page.Message = view.Message{}
	logger.Debugf("found %d stocks", len(result.Value))
}

func (c *Controller) SubmitOrder(ctx context.Context, page *view.OrderPage, form models.OrderForm) {
	page.Form = form
	page.TotalPrice = view.CalcTotalPrice(form.Price, form.Count)

	logger := log.WithContext(ctx).WithFields(log.Fields{
		"action":  "order",
		"account": form.Account,
		"isin":    form.Isin,
	})

	order, err := form.ToRequest(c.now(), c.loc)
	if err != nil {
		logger.Infof("order form rejected: %v", err)
		page.Message = view.MessageFor(models.NewValidationError(err))
		return
	}

	result := c.api.SubmitOrder(ctx, order)
	page.Message = view.ResponseMessage(result)

	if result.IsOk() {
		logger.WithField("deadline", order.Deadline.String()).Info("order submitted")
	} else {
		logger.WithFields(log.Fields{"status": result.Status, "kind": result.Err.Kind}).Warnf("order failed: %v", result.Err)
	}
}

func (c *Controller) CalcTotalPrice(page *view.OrderPage, form models.OrderForm) {
	page.Form = form
	page.TotalPrice = view.CalcTotalPrice(form.Price, form.Count)
}

func (c *Controller) LoadBalance(ctx context.Context, page *view.OrderPage, username string) {
	result := c.api.FetchBalance(ctx, username)
	if !result.IsOk() {
		log.WithContext(ctx).WithFields(log.Fields{"action": "balance", "kind": result.Err.Kind}).Warnf("failed to load balance: %v", result.Err)
		page.Balance = ""
		page.Message = view.MessageFor(result.Err)
		return
	}

	page.Form.Account = username
	page.SetBalance(username, result.Value.Balance)
}
