package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/t1ery/AssistBot/internal/httpclient"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(srv.Client(), "test-key")
	c.baseURL = srv.URL
	// в тестах повторы не нужны
	c.httpCfg.Backoff = httpclient.BackoffConfig{
		MaxRetries:      0,
		InitialInterval: time.Millisecond,
	}
	return c
}

func TestResolveReturnsLocalName(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "1" {
			t.Errorf("ожидался limit=1, получено %q", got)
		}
		w.Write([]byte(`[{"name":"Moscow","local_names":{"ru":"Москва","en":"Moscow"},"state":"Moscow","country":"RU","lat":55.75,"lon":37.61}]`))
	})

	place, err := c.Resolve(context.Background(), 55.75, 37.61)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if place.RuName != "Москва" {
		t.Errorf("ожидалось русское имя Москва, получено %q", place.RuName)
	}
	if place.Country != "RU" {
		t.Errorf("ожидалась страна RU, получено %q", place.Country)
	}
}

func TestResolveFallsBackToName(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name":"Smallville","country":"US","lat":1,"lon":2}]`))
	})

	city, err := c.ResolveCity(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if city != "Smallville" {
		t.Errorf("ожидался фолбэк на основное имя, получено %q", city)
	}
}

func TestResolveEmptyPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	_, err := c.Resolve(context.Background(), 0, 0)
	if !errors.Is(err, ErrNoResult) {
		t.Fatalf("ожидалась ErrNoResult, получено: %v", err)
	}
}

func TestResolveServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := c.Resolve(context.Background(), 0, 0); err == nil {
		t.Fatal("ожидалась ошибка при ответе 500")
	}
}

func TestResolveInvalidCoordinates(t *testing.T) {
	c := NewClient(http.DefaultClient, "test-key")

	if _, err := c.Resolve(context.Background(), 91, 0); err == nil {
		t.Fatal("ожидалась ошибка для широты вне диапазона")
	}
	if _, err := c.Resolve(context.Background(), 0, 181); err == nil {
		t.Fatal("ожидалась ошибка для долготы вне диапазона")
	}
}
