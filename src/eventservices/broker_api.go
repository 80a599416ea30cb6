package eventservices

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jiaming2012/broker-client/src/models"
)

const (
	LoginPath    = "/api/login"
	AccountsPath = "/api/accounts"
	StocksPath   = "/api/stocks"
	OrderPath    = "/api/order"
	BalancePath  = "/api/balance"
)

// BrokerApiClient talks to the order scheduling backend.
type BrokerApiClient struct {
	baseURL       *url.URL
	client        *http.Client
	retries       uint64
	retryInterval time.Duration
}

type BrokerApiClientOption func(*BrokerApiClient)

// WithRetries sets how many times an idempotent request is retried after a network or server failure.
func WithRetries(retries uint64) BrokerApiClientOption {
	return func(c *BrokerApiClient) {
		c.retries = retries
	}
}

func WithRetryInterval(interval time.Duration) BrokerApiClientOption {
	return func(c *BrokerApiClient) {
		c.retryInterval = interval
	}
}

func WithHTTPClient(client *http.Client) BrokerApiClientOption {
	return func(c *BrokerApiClient) {
		c.client = client
	}
}

func NewBrokerApiClient(baseURL string, timeout time.Duration, opts ...BrokerApiClientOption) (*BrokerApiClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("NewBrokerApiClient: failed to parse base URL: %w", err)
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("NewBrokerApiClient: base URL %q must be absolute", baseURL)
	}

	c := &BrokerApiClient{
		baseURL: parsed,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		retries:       2,
		retryInterval: 200 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *BrokerApiClient) Login(ctx context.Context, req models.LoginRequest) models.Result[models.MessageDTO] {
	if err := req.Validate(); err != nil {
		return models.Failure[models.MessageDTO](models.NewValidationError(err))
	}

	resp, clientErr := c.do(ctx, http.MethodPost, LoginPath, nil, req)
	if clientErr != nil {
		return models.Failure[models.MessageDTO](clientErr)
	}

	return decodeResponse[models.MessageDTO](LoginPath, resp)
}

func (c *BrokerApiClient) FetchAccounts(ctx context.Context) models.Result[[]models.AccountSummary] {
	resp, clientErr := c.doWithRetry(ctx, AccountsPath, nil)
	if clientErr != nil {
		return models.Failure[[]models.AccountSummary](clientErr)
	}

	return decodeResponse[[]models.AccountSummary](AccountsPath, resp)
}

func (c *BrokerApiClient) FetchStocks(ctx context.Context, query models.StockQuery) models.Result[[]models.StockResult] {
	query, err := query.Normalize()
	if err != nil {
		return models.Failure[[]models.StockResult](models.NewValidationError(err))
	}

	resp, clientErr := c.doWithRetry(ctx, StocksPath, url.Values{"label": []string{query.Label}})
	if clientErr != nil {
		return models.Failure[[]models.StockResult](clientErr)
	}

	return decodeResponse[[]models.StockResult](StocksPath, resp)
}

func (c *BrokerApiClient) SubmitOrder(ctx context.Context, order models.OrderRequest) models.Result[models.MessageDTO] {
	resp, clientErr := c.do(ctx, http.MethodPost, OrderPath, nil, order)
	if clientErr != nil {
		return models.Failure[models.MessageDTO](clientErr)
	}

	return decodeResponse[models.MessageDTO](OrderPath, resp)
}

func (c *BrokerApiClient) FetchBalance(ctx context.Context, username string) models.Result[models.BalanceDTO] {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.Failure[models.BalanceDTO](models.NewValidationError(models.AccountRequiredErr))
	}

	resp, clientErr := c.doWithRetry(ctx, BalancePath, url.Values{"username": []string{username}})
	if clientErr != nil {
		return models.Failure[models.BalanceDTO](clientErr)
	}

	return decodeResponse[models.BalanceDTO](BalancePath, resp)
}

type apiResponse struct {
	status int
	body   []byte
}

func (c *BrokerApiClient) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	return u.String()
}

// doWithRetry issues a GET, retrying network and server failures with exponential backoff.
func (c *BrokerApiClient) doWithRetry(ctx context.Context, path string, query url.Values) (*apiResponse, *models.ClientError) {
	var resp *apiResponse

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval
	b.MaxElapsedTime = 0

	attempt := 0
	var lastErr *models.ClientError
	operation := func() error {
		attempt++

		r, clientErr := c.do(ctx, http.MethodGet, path, query, nil)
		if clientErr == nil {
			resp = r
			return nil
		}

		lastErr = clientErr

		if clientErr.Kind == models.ErrorKindNetwork || clientErr.Kind == models.ErrorKindServer {
			log.WithFields(log.Fields{
				"path":    path,
				"attempt": attempt,
				"kind":    clientErr.Kind,
			}).Warnf("doWithRetry: request failed: %v", clientErr)

			return clientErr
		}

		return backoff.Permanent(clientErr)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(b, c.retries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		var clientErr *models.ClientError
		if errors.As(err, &clientErr) {
			return nil, clientErr
		}

		if lastErr != nil {
			return nil, lastErr
		}

		return nil, models.NewClientError(models.ErrorKindNetwork, 0, "", fmt.Errorf("doWithRetry: %s: %w", path, err))
	}

	return resp, nil
}

func (c *BrokerApiClient) do(ctx context.Context, method string, path string, query url.Values, payload interface{}) (*apiResponse, *models.ClientError) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, models.NewClientError(models.ErrorKindUnknown, 0, "", fmt.Errorf("BrokerApiClient.do: failed to encode payload: %w", err))
		}

		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return nil, models.NewClientError(models.ErrorKindUnknown, 0, "", fmt.Errorf("BrokerApiClient.do: failed to create request: %w", err))
	}

	req.Header.Add("Accept", "application/json")
	if payload != nil {
		req.Header.Add("Content-Type", "application/json")
	}

	log.Tracef("BrokerApiClient: %s %s", method, req.URL.String())

	res, err := c.client.Do(req)
	if err != nil {
		return nil, models.NewClientError(models.ErrorKindNetwork, 0, "", fmt.Errorf("BrokerApiClient.do: %s %s: %w", method, path, err))
	}

	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, models.NewClientError(models.ErrorKindNetwork, res.StatusCode, "", fmt.Errorf("BrokerApiClient.do: failed to read response body: %w", err))
	}

	if res.StatusCode != http.StatusOK {
		return nil, classifyResponse(path, res.StatusCode, data)
	}

	return &apiResponse{status: res.StatusCode, body: data}, nil
}

func decodeResponse[T any](path string, resp *apiResponse) models.Result[T] {
	var value T
	if err := json.Unmarshal(resp.body, &value); err != nil {
		return models.Failure[T](models.NewClientError(models.ErrorKindUnknown, resp.status, "", fmt.Errorf("decodeResponse: %s: failed to decode json: %w", path, err)))
	}

	return models.Success(value, resp.status)
}
