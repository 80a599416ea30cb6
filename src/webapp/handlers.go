package webapp

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/broker-client/src/eventpubsub"
	"github.com/jiaming2012/broker-client/src/models"
	"github.com/jiaming2012/broker-client/src/view"
)

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) loginPageHandler(w http.ResponseWriter, r *http.Request) {
	sess, release, err := s.acquire(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	defer release()

	if err := sess.dispatcher.Publish(serviceName, eventpubsub.LoginPageReady, r.Context(), sess.login); err != nil {
		s.fail(w, err)
		return
	}

	s.renderLogin(w, sess.login)
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	sess, release, err := s.acquire(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	defer release()

	var form models.LoginForm
	if !s.decodeForm(w, r, &form) {
		return
	}

	if err := sess.dispatcher.Publish(serviceName, eventpubsub.LoginSubmitted, r.Context(), sess.login, form); err != nil {
		s.fail(w, err)
		return
	}

	s.renderLogin(w, sess.login)
}

func (s *Server) orderPageHandler(w http.ResponseWriter, r *http.Request) {
	sess, release, err := s.acquire(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	defer release()

	sess.order.Message = view.Message{}
	sess.order.Balance = ""

	if err := sess.dispatcher.Publish(serviceName, eventpubsub.OrderPageReady, r.Context(), sess.order); err != nil {
		s.fail(w, err)
		return
	}

	s.renderOrder(w, sess.order)
}

func (s *Server) stockSearchHandler(w http.ResponseWriter, r *http.Request) {
	sess, release, err := s.acquire(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	defer release()

	var query models.StockQuery
	if !s.decodeForm(w, r, &query) {
		return
	}

	if err := sess.dispatcher.Publish(serviceName, eventpubsub.StockSearch, r.Context(), sess.order, query); err != nil {
		s.fail(w, err)
		return
	}

	s.renderOrder(w, sess.order)
}

func (s *Server) totalPriceHandler(w http.ResponseWriter, r *http.Request) {
	sess, release, err := s.acquire(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	defer release()

	var form models.OrderForm
	if !s.decodeForm(w, r, &form) {
		return
	}

	if err := sess.dispatcher.Publish(serviceName, eventpubsub.OrderTotal, sess.order, form); err != nil {
		s.fail(w, err)
		return
	}

	s.renderOrder(w, sess.order)
}

func (s *Server) orderHandler(w http.ResponseWriter, r *http.Request) {
	sess, release, err := s.acquire(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	defer release()

	var form models.OrderForm
	if !s.decodeForm(w, r, &form) {
		return
	}

	if err := sess.dispatcher.Publish(serviceName, eventpubsub.OrderSubmitted, r.Context(), sess.order, form); err != nil {
		s.fail(w, err)
		return
	}

	s.renderOrder(w, sess.order)
}

// balanceHandler is reached through a GET form submit, so the whole order form arrives in the query string.
func (s *Server) balanceHandler(w http.ResponseWriter, r *http.Request) {
	sess, release, err := s.acquire(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	defer release()

	var form models.OrderForm
	if err := s.decoder.Decode(&form, r.URL.Query()); err != nil {
		log.Warnf("balanceHandler: failed to decode query: %v", err)
		http.Error(w, "invalid query", http.StatusBadRequest)
		return
	}

	sess.order.Form = form
	sess.order.TotalPrice = view.CalcTotalPrice(form.Price, form.Count)

	if form.Account == "" {
		sess.order.Balance = ""
		sess.order.Message = view.MessageFor(models.NewValidationError(models.AccountRequiredErr))
		s.renderOrder(w, sess.order)
		return
	}

	if err := sess.dispatcher.Publish(serviceName, eventpubsub.AccountBalance, r.Context(), sess.order, form.Account); err != nil {
		s.fail(w, err)
		return
	}

	s.renderOrder(w, sess.order)
}

func (s *Server) decodeForm(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := r.ParseForm(); err != nil {
		log.Warnf("decodeForm: failed to parse form: %v", err)
		http.Error(w, "invalid form", http.StatusBadRequest)
		return false
	}

	if err := s.decoder.Decode(dst, r.PostForm); err != nil {
		log.Warnf("decodeForm: failed to decode form: %v", err)
		http.Error(w, "invalid form", http.StatusBadRequest)
		return false
	}

	return true
}

func (s *Server) renderLogin(w http.ResponseWriter, page *view.LoginPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.RenderLogin(w, page); err != nil {
		log.Errorf("renderLogin: %v", err)
	}
}

func (s *Server) renderOrder(w http.ResponseWriter, page *view.OrderPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.RenderOrder(w, page); err != nil {
		log.Errorf("renderOrder: %v", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	log.Errorf("webapp: %v", err)
	http.Error(w, view.GenericFailureText, http.StatusInternalServerError)
}
