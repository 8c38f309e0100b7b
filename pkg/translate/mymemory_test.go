package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matzehuels/penman/pkg/errors"
	"github.com/matzehuels/penman/pkg/httputil"
)

func myMemoryServer(t *testing.T, h http.HandlerFunc) *MyMemory {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewMyMemory(MyMemoryConfig{BaseURL: srv.URL, Email: "dev@example.com"})
}

func writeBody(w http.ResponseWriter, status int, text, details string) {
	var body myMemoryResponse
	body.ResponseStatus = status
	body.ResponseDetails = details
	body.ResponseData.TranslatedText = text
	json.NewEncoder(w).Encode(body)
}

func TestMyMemorySuccess(t *testing.T) {
	m := myMemoryServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("q") != "good morning" {
			t.Errorf("q = %q", q.Get("q"))
		}
		if q.Get("langpair") != "en|ja" {
			t.Errorf("langpair = %q, want en|ja", q.Get("langpair"))
		}
		if q.Get("de") != "dev@example.com" {
			t.Errorf("de = %q", q.Get("de"))
		}
		writeBody(w, 200, "おはよう", "")
	})

	got, err := m.Translate(context.Background(), "good morning", "en", "ja")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "おはよう" {
		t.Errorf("got %q", got)
	}
}

func TestMyMemoryErrors(t *testing.T) {
	tests := []struct {
		name          string
		handler       http.HandlerFunc
		wantStatus    int
		wantTransient bool
	}{
		{
			name:          "http 429",
			handler:       func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTooManyRequests) },
			wantStatus:    429,
			wantTransient: true,
		},
		{
			name:       "http 503",
			handler:    func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) },
			wantStatus: 503,
		},
		{
			name:          "body 429",
			handler:       func(w http.ResponseWriter, r *http.Request) { writeBody(w, 429, "", "QUOTA EXCEEDED") },
			wantStatus:    429,
			wantTransient: true,
		},
		{
			name:       "body failure",
			handler:    func(w http.ResponseWriter, r *http.Request) { writeBody(w, 403, "", "INVALID LANGUAGE PAIR") },
			wantStatus: 0,
		},
		{
			name:       "malformed",
			handler:    func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("<html>")) },
			wantStatus: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := myMemoryServer(t, tt.handler)
			_, err := m.Translate(context.Background(), "hi", "en", "es")
			pe, ok := errors.AsProviderError(err)
			if !ok {
				t.Fatalf("err = %v, want *ProviderError", err)
			}
			if pe.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", pe.StatusCode, tt.wantStatus)
			}
			if pe.Transient() != tt.wantTransient {
				t.Errorf("Transient() = %v, want %v", pe.Transient(), tt.wantTransient)
			}
		})
	}
}

func TestMyMemoryTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	m := NewMyMemory(MyMemoryConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := m.Translate(context.Background(), "hi", "en", "es")

	pe, ok := errors.AsProviderError(err)
	if !ok || !pe.Timeout {
		t.Fatalf("err = %v, want timeout ProviderError", err)
	}
	if pe.HTTPStatus() != http.StatusInternalServerError {
		t.Errorf("HTTPStatus = %d, want 500", pe.HTTPStatus())
	}
}

// The provider answers 429 once and then succeeds; the relay must return
// the second answer after a single one-second backoff.
func TestRelayOverMyMemoryRecoversFromRateLimit(t *testing.T) {
	calls := 0
	m := myMemoryServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		writeBody(w, 200, "hola", "")
	})
	s := &recordingSleeper{}
	r := NewRelay(m, RelayOptions{Policy: httputil.Policy{Attempts: 4, Delay: time.Second, Sleep: s.sleep}})

	res, err := r.Translate(context.Background(), Request{Text: "hello", SourceLang: "en", TargetLang: "es"})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if res.TranslatedText != "hola" {
		t.Errorf("TranslatedText = %q", res.TranslatedText)
	}
	if len(s.waits) != 1 || s.waits[0] != time.Second {
		t.Errorf("waits = %v, want [1s]", s.waits)
	}
}
