package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"aptprice/pricing"
)

func TestFlashStorePutPop(t *testing.T) {
	store, err := NewFlashStore(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := httptest.NewRecorder()
	store.Put(w, httptest.NewRequest(http.MethodPost, "/estimate", nil), flash{Listing: pricing.DefaultListing(), Error: "x"})
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != flashCookie {
		t.Fatalf("expected session cookie, got %v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	f, ok := store.Pop(req)
	if !ok || f.Error != "x" {
		t.Fatalf("expected stored flash, got %+v ok=%v", f, ok)
	}
	if _, ok := store.Pop(req); ok {
		t.Fatal("expected flash to be consumed")
	}
}

func TestFlashStoreBounded(t *testing.T) {
	store, err := NewFlashStore(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		store.Put(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/estimate", nil), flash{})
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", store.Len())
	}
}

func TestFlashStoreIgnoresForeignCookie(t *testing.T) {
	store, _ := NewFlashStore(2)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: flashCookie, Value: "not-a-uuid"})
	if _, ok := store.Pop(req); ok {
		t.Fatal("expected no flash for invalid session id")
	}
}
