package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sitemapWatchlist = `{
  "server_chan_send_key": "YOUR_SERVERCHAN_SENDKEY",
  "sites": [
    {"name": "News", "url": "https://news.example.edu/sitemap.xml", "type": "sitemap", "enabled": true},
    {"name": "Archive", "url": "https://archive.example.edu/list.htm", "enabled": false,
     "selectors": {"list_container": "ul", "list_item": "li", "link": "a"}}
  ]
}`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd := newRootCmd()
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSitesCommandListsWatchlist(t *testing.T) {
	wl := writeTemp(t, "watchlist.json", sitemapWatchlist)
	hist := filepath.Join(t.TempDir(), "history.json")

	out, err := execute(t, "sites", "--config", wl, "--history", hist)
	require.NoError(t, err)

	var got []siteView
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []siteView{
		{Name: "News", URL: "https://news.example.edu/sitemap.xml", Type: "sitemap", Enabled: true},
		{Name: "Archive", URL: "https://archive.example.edu/list.htm", Type: "css", Enabled: false},
	}, got)
}

func TestHistoryCommandPrintsStoredHistory(t *testing.T) {
	wl := writeTemp(t, "watchlist.json", sitemapWatchlist)
	hist := writeTemp(t, "history.json", `{"News": ["https://news.example.edu/a?x=1&y=2"]}`)

	out, err := execute(t, "history", "--config", wl, "--history", hist)
	require.NoError(t, err)
	assert.Contains(t, out, `"https://news.example.edu/a?x=1&y=2"`)

	var got map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"https://news.example.edu/a?x=1&y=2"}, got["News"])
}

func TestHistoryCommandToleratesCorruptFile(t *testing.T) {
	wl := writeTemp(t, "watchlist.json", sitemapWatchlist)
	hist := writeTemp(t, "history.json", `{"News": [`)

	out, err := execute(t, "history", "--config", wl, "--history", hist)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, out)
}

func TestConfigErrorsFailTheCommand(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	_, err := execute(t, "check", "--config", missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")

	invalid := writeTemp(t, "watchlist.json", `{"sites": [{"name": "", "url": "https://x"}]}`)
	_, err = execute(t, "sites", "--config", invalid)
	assert.Error(t, err)
}
