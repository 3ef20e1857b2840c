package notifiers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Adda-Baaj/notice-watch/internal/domain"
)

func newTestServerChan(t *testing.T, handler http.HandlerFunc) (Notifier, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	cfg := ServerChanFromKey("SCTkey")
	cfg.ServerChan.Endpoint = srv.URL + "/SCTkey.send"
	n, err := newServerChanNotifier(context.Background(), cfg, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("newServerChanNotifier: %v", err)
	}
	return n, srv.Close
}

func TestServerChanNotifierPostsForm(t *testing.T) {
	var title, desp, path string
	n, stop := newTestServerChan(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		path = r.URL.Path
		title = r.PostForm.Get("title")
		desp = r.PostForm.Get("desp")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":0,"message":"","data":{"pushid":"1"}}`))
	})
	defer stop()

	err := n.Notify(context.Background(), domain.Notification{
		Title: "【教务处】1 new announcement(s) found",
		Body:  "Title: 通知\nURL: http://x/1",
	})
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if path != "/SCTkey.send" {
		t.Fatalf("unexpected path %q", path)
	}
	if title != "【教务处】1 new announcement(s) found" || desp != "Title: 通知\nURL: http://x/1" {
		t.Fatalf("unexpected form title=%q desp=%q", title, desp)
	}
}

func TestServerChanNotifierRejectsNonZeroCode(t *testing.T) {
	n, stop := newTestServerChan(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"code":40001,"message":"bad pushkey"}`))
	})
	defer stop()

	err := n.Notify(context.Background(), domain.Notification{Title: "t"})
	if err == nil || !strings.Contains(err.Error(), "bad pushkey") {
		t.Fatalf("expected rejection error, got %v", err)
	}
}

func TestServerChanNotifierRejectsHTTPErrors(t *testing.T) {
	n, stop := newTestServerChan(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})
	defer stop()

	if err := n.Notify(context.Background(), domain.Notification{Title: "t"}); err == nil {
		t.Fatalf("expected status error")
	}
}

func TestServerChanPlaceholderKey(t *testing.T) {
	for _, key := range []string{"", "  ", "YOUR_SERVERCHAN_SENDKEY"} {
		if !IsPlaceholderKey(key) {
			t.Errorf("%q should be treated as unset", key)
		}
		if _, err := newServerChanNotifier(context.Background(), ServerChanFromKey(key), nil); err == nil {
			t.Errorf("%q: expected build error", key)
		}
	}
	if IsPlaceholderKey("SCT1234") {
		t.Errorf("real key reported as placeholder")
	}
}
