package webapp

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/broker-client/src/eventpubsub"
	"github.com/jiaming2012/broker-client/src/view"
)

const SessionCookieName = "broker-client-session"

// session holds the page state of one browser. Handlers hold mutex for the whole request.
// Each session gets its own dispatcher so a slow backend call only blocks its own browser.
type session struct {
	mutex      *sync.Mutex
	dispatcher *eventpubsub.Dispatcher
	login      *view.LoginPage
	order      *view.OrderPage
}

type SessionStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		cache: cache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

// Acquire returns the locked session for the request, starting a new one when the
// cookie is missing or expired. The caller must call the returned release func.
func (s *SessionStore) Acquire(w http.ResponseWriter, r *http.Request) (*session, func()) {
	var id string
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		id = cookie.Value
	}

	var sess *session
	if id != "" {
		if store, found := s.cache.Get(id); found {
			sess = store.(*session)
		}
	}

	if sess == nil {
		id = uuid.New().String()
		sess = &session{
			mutex: &sync.Mutex{},
			login: view.NewLoginPage(),
			order: view.NewOrderPage(),
		}

		s.cache.Set(id, sess, cache.DefaultExpiration)
		log.Tracef("%v: new session", id)
	} else {
		// sliding expiration
		s.cache.Set(id, sess, cache.DefaultExpiration)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})

	sess.mutex.Lock()
	return sess, sess.mutex.Unlock
}

func (s *SessionStore) Count() int {
	return s.cache.ItemCount()
}
