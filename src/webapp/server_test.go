package webapp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/broker-client/src/eventservices"
	"github.com/jiaming2012/broker-client/src/formclient"
	"github.com/jiaming2012/broker-client/src/models"
	"github.com/jiaming2012/broker-client/src/render"
)

func newBackend(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode login: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		if req.Broker != models.BrokerTavana {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`[{"loc":["body","broker"],"msg":"broker not found","type":"value_error"}]`))
			return
		}

		w.Write([]byte(`{"message":"login successful"}`))
	})

	mux.HandleFunc("/api/accounts", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"username":"alice","broker":"TAVANA"},{"username":"bob","broker":"FAKE"}]`))
	})

	mux.HandleFunc("/api/stocks", func(w http.ResponseWriter, r *http.Request) {
		label := r.URL.Query().Get("label")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]models.StockResult{
			{Label: label + " 1", Value: 1200, Isin: "IRO1" + label},
		})
	})

	mux.HandleFunc("/api/balance", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"balance":5000000}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T) *Server {
	backend := newBackend(t)

	api, err := eventservices.NewBrokerApiClient(backend.URL, time.Second)
	require.NoError(t, err)

	controller := formclient.NewController(api, formclient.WithLocation(time.UTC))

	renderer, err := render.NewHTMLRenderer()
	require.NoError(t, err)

	return NewServer(controller, renderer, NewSessionStore(time.Minute))
}

type browser struct {
	t       *testing.T
	srv     *Server
	cookies []*http.Cookie
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range b.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	b.srv.ServeHTTP(rec, req)

	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		b.cookies = cookies
	}

	return rec
}

func (b *browser) get(target string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (b *browser) post(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func TestHealthz(t *testing.T) {
	b := &browser{t: t, srv: newTestServer(t)}

	rec := b.get("/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestLoginRoutes(t *testing.T) {
	t.Run("login page", func(t *testing.T) {
		b := &browser{t: t, srv: newTestServer(t)}

		for _, target := range []string{"/", "/login"} {
			rec := b.get(target)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `id="username-input"`)
		}

		require.Len(t, b.cookies, 1)
		assert.Equal(t, SessionCookieName, b.cookies[0].Name)
	})

	t.Run("unknown broker renders the server message", func(t *testing.T) {
		b := &browser{t: t, srv: newTestServer(t)}

		rec := b.post("/login", url.Values{
			"username-input": {"a"},
			"password-input": {"b"},
			"broker-name":    {"x"},
		})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `<p id="message" class="message message-validation">broker not found</p>`)
		assert.Contains(t, rec.Body.String(), `value="a"`)
		assert.NotContains(t, rec.Body.String(), `value="b"`)
	})

	t.Run("successful login", func(t *testing.T) {
		b := &browser{t: t, srv: newTestServer(t)}

		rec := b.post("/login", url.Values{
			"username-input": {"alice"},
			"password-input": {"secret"},
			"broker-name":    {"TAVANA"},
		})

		assert.Contains(t, rec.Body.String(), `<p id="message" class="message message-success">login successful</p>`)
	})

	t.Run("missing fields are rejected locally", func(t *testing.T) {
		b := &browser{t: t, srv: newTestServer(t)}

		rec := b.post("/login", url.Values{"username-input": {"alice"}})
		assert.Contains(t, rec.Body.String(), `message-validation`)
	})

	t.Run("wrong method", func(t *testing.T) {
		b := &browser{t: t, srv: newTestServer(t)}

		rec := b.do(httptest.NewRequest(http.MethodDelete, "/login", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestOrderRoutes(t *testing.T) {
	t.Run("order page lists accounts", func(t *testing.T) {
		b := &browser{t: t, srv: newTestServer(t)}

		body := b.get("/order").Body.String()
		assert.Contains(t, body, `<option value="alice" selected>alice | TAVANA</option>`)
		assert.Contains(t, body, `<option value="bob">bob | FAKE</option>`)
		assert.Contains(t, body, `<span id="stock-total-price">-</span>`)
		assert.Less(t, strings.Index(body, "alice | TAVANA"), strings.Index(body, "bob | FAKE"))
	})

	t.Run("searches replace previous rows", func(t *testing.T) {
		b := &browser{t: t, srv: newTestServer(t)}
		b.get("/order")

		first := b.post("/order/search", url.Values{"stock-search": {"fold"}}).Body.String()
		assert.Contains(t, first, "IRO1fold")

		second := b.post("/order/search", url.Values{"stock-search": {"khodro"}}).Body.String()
		assert.Contains(t, second, "IRO1khodro")
		assert.NotContains(t, second, "IRO1fold")
	})

	t.Run("total price", func(t *testing.T) {
		b := &browser{t: t, srv: newTestServer(t)}

		body := b.post("/order/total", url.Values{"stock-price": {"2.5"}, "stock-count": {"4"}}).Body.String()
		assert.Contains(t, body, `<span id="stock-total-price">10</span>`)

		body = b.post("/order/total", url.Values{"stock-price": {"abc"}, "stock-count": {"4"}}).Body.String()
		assert.Contains(t, body, `<span id="stock-total-price">-</span>`)
	})

	t.Run("invalid order is not sent", func(t *testing.T) {
		b := &browser{t: t, srv: newTestServer(t)}

		body := b.post("/order", url.Values{"account": {"alice"}, "stock-isin": {"IR1"}, "stock-price": {"0"}, "stock-count": {"1"}}).Body.String()
		assert.Contains(t, body, `message-validation`)
	})

	t.Run("balance", func(t *testing.T) {
		b := &browser{t: t, srv: newTestServer(t)}

		body := b.get("/order/balance?account=alice&stock-price=1&stock-count=2").Body.String()
		assert.Contains(t, body, `<p id="balance">alice: 5000000 IRR</p>`)
		assert.Contains(t, body, `<span id="stock-total-price">2</span>`)

		body = b.get("/order/balance").Body.String()
		assert.Contains(t, body, models.AccountRequiredErr.Error())
	})
}

func TestSessionsAreIsolated(t *testing.T) {
	srv := newTestServer(t)
	alice := &browser{t: t, srv: srv}
	bob := &browser{t: t, srv: srv}

	alice.post("/order/search", url.Values{"stock-search": {"fold"}})
	body := bob.get("/order").Body.String()

	assert.NotContains(t, body, "IRO1fold")
	assert.Equal(t, 2, srv.sessions.Count())
}
