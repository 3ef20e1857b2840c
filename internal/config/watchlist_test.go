package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Adda-Baaj/notice-watch/pkg/notifiers"
	"github.com/Adda-Baaj/notice-watch/pkg/sites"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const jsonWatchlist = `{
  "server_chan_send_key": "YOUR_SERVERCHAN_SENDKEY",
  "monitor_count": 10,
  "sites": [
    {
      "name": "教务处",
      "url": "https://jwc.example.edu.cn/tzgg.htm",
      "base_url": "https://jwc.example.edu.cn/",
      "enabled": true,
      "selectors": {"list_container": "div.list", "list_item": "li", "link": "a"}
    },
    {
      "name": "Library",
      "url": "https://lib.example.edu.cn/news.htm",
      "enabled": false,
      "selectors": {"list_container": "ul.news", "list_item": "li", "link": "a"}
    }
  ]
}`

func TestLoadWatchlistJSON(t *testing.T) {
	wl, err := LoadWatchlist(writeFile(t, "config.json", jsonWatchlist))
	if err != nil {
		t.Fatalf("LoadWatchlist: %v", err)
	}
	if wl.MonitorCount != 10 || len(wl.Sites) != 2 {
		t.Fatalf("unexpected watchlist %#v", wl)
	}
	first := wl.Sites[0]
	if first.Name != "教务处" || !first.Enabled || first.Type != sites.TypeSelector {
		t.Fatalf("unexpected first site %#v", first)
	}
	if first.Selectors.ListContainer != "div.list" {
		t.Fatalf("selectors not decoded: %#v", first.Selectors)
	}
	if len(sites.Enabled(wl.Sites)) != 1 {
		t.Fatalf("expected one enabled site")
	}
	if n := wl.NotifierConfigs(); len(n) != 0 {
		t.Fatalf("placeholder key must not register a notifier, got %#v", n)
	}
}

func TestLoadWatchlistYAMLWithNotifiers(t *testing.T) {
	content := `
server_chan_send_key: SCT12345
monitor_count: 0
sites:
  - name: gov
    url: https://www.example.gov/sitemap.xml
    type: sitemap
    enabled: true
notifiers:
  - id: hook
    type: http
    http:
      url: https://hooks.example.com/notify
  - id: queue
    type: sqs
    enabled: false
    sqs:
      uri: https://sqs.us-east-1.amazonaws.com/123/announcements
      region: us-east-1
`
	wl, err := LoadWatchlist(writeFile(t, "watchlist.yaml", content))
	if err != nil {
		t.Fatalf("LoadWatchlist: %v", err)
	}
	if wl.Sites[0].Type != sites.TypeSitemap {
		t.Fatalf("unexpected type %q", wl.Sites[0].Type)
	}
	if wl.Notifiers[1].SQS == nil || wl.Notifiers[1].SQS.Region != "us-east-1" {
		t.Fatalf("inline aws config not decoded: %#v", wl.Notifiers[1].SQS)
	}

	got := wl.NotifierConfigs()
	if len(got) != 2 {
		t.Fatalf("expected serverchan + hook, got %#v", got)
	}
	if got[0].Type != notifiers.TypeServerChan || got[0].ServerChan.SendKey != "SCT12345" {
		t.Fatalf("unexpected implicit notifier %#v", got[0])
	}
	if got[1].ID != "hook" || got[1].HTTP.Method != "POST" {
		t.Fatalf("unexpected hook notifier %#v", got[1])
	}
}

func TestLoadWatchlistRejectsBadFiles(t *testing.T) {
	site := `{"name": "a", "url": "https://a", "selectors": {"list_container": "ul", "list_item": "li", "link": "a"}}`
	cases := map[string]struct {
		name    string
		content string
		want    string
	}{
		"malformed json":  {name: "c.json", content: `{"sites": [`, want: "not recognized"},
		"no sites":        {name: "c.json", content: `{"sites": []}`, want: "no sites"},
		"duplicate names": {name: "c.json", content: `{"sites": [` + site + `,` + site + `]}`, want: "duplicate site name"},
		"negative count":  {name: "c.json", content: `{"monitor_count": -1, "sites": [` + site + `]}`, want: "monitor_count"},
		"missing selectors": {
			name:    "c.yaml",
			content: "sites:\n  - name: a\n    url: https://a\n",
			want:    "selectors",
		},
		"bad notifier": {
			name:    "c.yaml",
			content: "sites:\n  - name: a\n    url: https://a\n    type: sitemap\nnotifiers:\n  - id: x\n    type: http\n",
			want:    "notifiers[0]",
		},
	}

	for label, tc := range cases {
		t.Run(label, func(t *testing.T) {
			_, err := LoadWatchlist(writeFile(t, tc.name, tc.content))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadWatchlistMissingFile(t *testing.T) {
	if _, err := LoadWatchlist(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := LoadWatchlist("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestParseWatchlistUnknownExtensionTriesAll(t *testing.T) {
	wl, err := parseWatchlist([]byte("sites:\n  - name: a\n"), ".conf")
	if err != nil {
		t.Fatalf("parseWatchlist: %v", err)
	}
	if len(wl.Sites) != 1 || wl.Sites[0].Name != "a" {
		t.Fatalf("unexpected parse result %#v", wl)
	}
}
