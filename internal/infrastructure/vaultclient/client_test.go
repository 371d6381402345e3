package vaultclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/iancoleman/orderedmap"

	"github.com/securevault/vault-system/internal/core/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/secure-search", WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestLookup_SendsBodyWithoutAuth(t *testing.T) {
	var got map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/secure-search" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("no auth header expected")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNotFound)
	})

	c.Lookup(context.Background(), domain.SearchRequest{Field: domain.FieldAccountID, Value: "ACC-1", Role: domain.RoleUser})

	want := map[string]string{"field": "account_id", "value": "ACC-1", "role": "user"}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("body[%s] = %q, want %q", k, got[k], v)
		}
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected extra keys: %v", got)
	}
}

func TestLookup_NotFoundIgnoresBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	out := c.Lookup(context.Background(), domain.SearchRequest{})
	if out.Kind != domain.OutcomeNotFound || out.HasError() {
		t.Fatalf("expected not found, got %+v", out)
	}
}

func TestLookup_SuccessKeepsBodyOrder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","message":"Search successful","data":{"z":1,"a":2}}`))
	})

	out := c.Lookup(context.Background(), domain.SearchRequest{})
	if out.Kind != domain.OutcomeSuccess {
		t.Fatalf("expected success, got %+v", out)
	}
	obj, ok := out.Body.(*orderedmap.OrderedMap)
	if !ok {
		t.Fatalf("expected ordered map body, got %T", out.Body)
	}
	if diff := cmp.Diff([]string{"status", "message", "data"}, obj.Keys()); diff != "" {
		t.Fatalf("top-level order lost (-want +got):\n%s", diff)
	}
	data, _ := obj.Get("data")
	nested := data.(orderedmap.OrderedMap)
	keys := nested.Keys()
	if len(keys) != 2 || keys[0] != "z" || keys[1] != "a" {
		t.Fatalf("key order lost: %v", keys)
	}
}

func TestLookup_StatusFailures(t *testing.T) {
	for _, code := range []int{http.StatusBadRequest, http.StatusInternalServerError, http.StatusServiceUnavailable} {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(code)
			_, _ = w.Write([]byte(`{"error":"Decryption failed"}`))
		})

		out := c.Lookup(context.Background(), domain.SearchRequest{})
		if out.Kind != domain.OutcomeFailure || out.StatusCode != code {
			t.Fatalf("%d: unexpected outcome %+v", code, out)
		}
		if out.Error != domain.StatusFailure(code).Error {
			t.Fatalf("%d: unexpected error text %q", code, out.Error)
		}
	}
}

func TestLookup_NonObjectBodyIsDecodedAsIs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`["ok",1]`))
	})

	out := c.Lookup(context.Background(), domain.SearchRequest{})
	if out.Kind != domain.OutcomeSuccess {
		t.Fatalf("expected success, got %+v", out)
	}
	if diff := cmp.Diff([]any{"ok", float64(1)}, out.Body); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestLookup_InvalidJSONIsConnectionFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Service Unavailable"))
	})

	out := c.Lookup(context.Background(), domain.SearchRequest{})
	if out.Error != domain.ConnectionFailedMessage {
		t.Fatalf("expected connection failure, got %+v", out)
	}
}

func TestLookup_TransportErrorIsConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c, err := New(addr)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	out := c.Lookup(context.Background(), domain.SearchRequest{})
	if out.Kind != domain.OutcomeFailure || out.Error != domain.ConnectionFailedMessage || out.StatusCode != 0 {
		t.Fatalf("expected connection failure, got %+v", out)
	}
}

func TestNew_DefaultsAndScheme(t *testing.T) {
	c, err := New("")
	if err != nil || c.Endpoint() != DefaultEndpoint {
		t.Fatalf("expected default endpoint, got %q (%v)", c.Endpoint(), err)
	}
	c, _ = New("vault.local:5000/secure-search")
	if c.Endpoint() != "http://vault.local:5000/secure-search" {
		t.Fatalf("expected http scheme prefix, got %q", c.Endpoint())
	}
}
