package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRestyClientSendsDefaultUserAgent(t *testing.T) {
	var gotUA, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))
	defer srv.Close()

	client := NewRestyClient(2*time.Second, "")
	resp, err := client.Get(context.Background(), srv.URL, map[string]string{"Accept-Language": "zh-CN"})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode() != http.StatusTeapot {
		t.Fatalf("status = %d", resp.StatusCode())
	}
	if string(resp.Body()) != "short and stout" {
		t.Fatalf("body = %q", resp.Body())
	}
	if gotUA != DefaultUserAgent {
		t.Fatalf("user agent = %q", gotUA)
	}
	if gotLang != "zh-CN" {
		t.Fatalf("accept-language = %q", gotLang)
	}
}

func TestRestyClientHeaderOverridesUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	client := NewRestyClient(2*time.Second, "configured/1.0")
	if _, err := client.Get(context.Background(), srv.URL, map[string]string{"User-Agent": "site/2.0"}); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotUA != "site/2.0" {
		t.Fatalf("user agent = %q", gotUA)
	}
}

func TestRestyClientTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	client := NewRestyClient(50*time.Millisecond, "")
	if _, err := client.Get(context.Background(), srv.URL, nil); err == nil {
		t.Fatalf("expected timeout error")
	}
}
