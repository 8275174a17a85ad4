package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type idempotencyStoreStub struct {
	checkAndSetFn func(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, []byte, error)
	updateFn      func(ctx context.Context, key string, value []byte, ttl time.Duration) error

	updatedKey   string
	updatedValue []byte
}

func (s *idempotencyStoreStub) CheckAndSet(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, []byte, error) {
	return s.checkAndSetFn(ctx, key, value, ttl)
}

func (s *idempotencyStoreStub) Update(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.updatedKey = key
	s.updatedValue = value
	if s.updateFn != nil {
		return s.updateFn(ctx, key, value, ttl)
	}
	return nil
}

func echoHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	})
}

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	store := &idempotencyStoreStub{
		checkAndSetFn: func(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, []byte, error) {
			return true, []byte(`{"transaction":{"id":"txn-1"}}`), nil
		},
	}

	handlerCalled := false
	mw := NewIdempotencyMiddleware(store, time.Hour)
	h := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ingest", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if handlerCalled {
		t.Fatal("handler should not run on replay")
	}
	if rec.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatal("expected replay header")
	}
	if !strings.Contains(rec.Body.String(), "txn-1") {
		t.Fatalf("expected cached body, got %s", rec.Body.String())
	}
}

func TestIdempotency_FirstRequestStoresResponse(t *testing.T) {
	store := &idempotencyStoreStub{
		checkAndSetFn: func(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, []byte, error) {
			return false, nil, nil
		},
	}

	mw := NewIdempotencyMiddleware(store, time.Hour)
	h := mw.Wrap(echoHandler(http.StatusCreated, `{"ok":true}`))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ingest", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if store.updatedKey != "key-1" || string(store.updatedValue) != `{"ok":true}` {
		t.Fatalf("expected stored response, got key=%q value=%q", store.updatedKey, store.updatedValue)
	}
}

func TestIdempotency_FailedResponseNotStored(t *testing.T) {
	store := &idempotencyStoreStub{
		checkAndSetFn: func(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, []byte, error) {
			return false, nil, nil
		},
	}

	mw := NewIdempotencyMiddleware(store, time.Hour)
	h := mw.Wrap(echoHandler(http.StatusInternalServerError, `{"error":"internal"}`))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ingest", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if store.updatedKey != "" {
		t.Fatalf("error responses must not be cached, got key=%q", store.updatedKey)
	}
}

func TestIdempotency_ProcessingPlaceholderPassesThrough(t *testing.T) {
	store := &idempotencyStoreStub{
		checkAndSetFn: func(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, []byte, error) {
			return true, []byte("processing"), nil
		},
	}

	handlerCalled := false
	mw := NewIdempotencyMiddleware(store, time.Hour)
	h := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ingest", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if !handlerCalled {
		t.Fatal("placeholder entry must not short-circuit the request")
	}
}

func TestIdempotency_SkipsNonMutatingAndKeylessRequests(t *testing.T) {
	store := &idempotencyStoreStub{
		checkAndSetFn: func(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, []byte, error) {
			t.Fatal("store should not be consulted")
			return false, nil, nil
		},
	}

	mw := NewIdempotencyMiddleware(store, time.Hour)
	h := mw.Wrap(echoHandler(http.StatusOK, "ok"))

	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/bills/bill-1", nil)
	getReq.Header.Set(IdempotencyKeyHeader, "key-1")
	h.ServeHTTP(httptest.NewRecorder(), getReq)

	postReq := httptest.NewRequest(http.MethodPost, "/api/v1/ingest", nil)
	h.ServeHTTP(httptest.NewRecorder(), postReq)
}
