package http

import (
	"net/http"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"aptprice/pricing"
)

const flashCookie = "aptprice_session"

// flash carries one submit result across the redirect back to the form.
type flash struct {
	Listing pricing.Listing
	Result  *pricing.Estimate
	Error   string
}

// FlashStore keeps at most one pending flash per browser session. Old sessions
// fall out of the LRU, so nothing outlives the process or grows unbounded.
type FlashStore struct {
	cache *lru.Cache[string, flash]
}

// NewFlashStore holds up to capacity pending results.
func NewFlashStore(capacity int) (*FlashStore, error) {
	if capacity <= 0 {
		capacity = 1024
	}
	cache, err := lru.New[string, flash](capacity)
	if err != nil {
		return nil, err
	}
	return &FlashStore{cache: cache}, nil
}

// Put stores f under the caller's session, issuing a session cookie when the
// request has none.
func (s *FlashStore) Put(w http.ResponseWriter, r *http.Request, f flash) {
	id := sessionID(r)
	if id == "" {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     flashCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	s.cache.Add(id, f)
}

// Pop returns and forgets the pending flash, so a reload shows a fresh form.
func (s *FlashStore) Pop(r *http.Request) (flash, bool) {
	id := sessionID(r)
	if id == "" {
		return flash{}, false
	}
	f, ok := s.cache.Get(id)
	if ok {
		s.cache.Remove(id)
	}
	return f, ok
}

// Len reports the number of pending results.
func (s *FlashStore) Len() int {
	return s.cache.Len()
}

func sessionID(r *http.Request) string {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return ""
	}
	return cookie.Value
}
