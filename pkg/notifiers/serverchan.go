package notifiers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Adda-Baaj/notice-watch/internal/domain"
	"github.com/Adda-Baaj/notice-watch/pkg/httpclient"
	"github.com/go-resty/resty/v2"
)

const serverChanEndpointFormat = "https://sctapi.ftqq.com/%s.send"

// serverChanNotifier pushes notifications through the ServerChan gateway.
type serverChanNotifier struct {
	id       string
	endpoint string
	client   *resty.Client
	log      Logger
}

type serverChanResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newServerChanNotifier(_ context.Context, cfg NotifierConfig, log Logger) (Notifier, error) {
	if cfg.ServerChan == nil || IsPlaceholderKey(cfg.ServerChan.SendKey) {
		return nil, fmt.Errorf("notifier %q missing serverchan send key", cfg.ID)
	}

	endpoint := cfg.ServerChan.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf(serverChanEndpointFormat, cfg.ServerChan.SendKey)
	}

	return &serverChanNotifier{
		id:       cfg.ID,
		endpoint: endpoint,
		client:   httpclient.NewRestyHTTPClient(time.Duration(cfg.ServerChan.TimeoutSeconds) * time.Second),
		log:      ensureLogger(log),
	}, nil
}

func (s *serverChanNotifier) ID() string   { return s.id }
func (s *serverChanNotifier) Type() string { return TypeServerChan }

// Notify posts title and desp as a form. Delivery counts as successful only
// when the gateway answers with code 0.
func (s *serverChanNotifier) Notify(ctx context.Context, n domain.Notification) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"title": n.Title,
			"desp":  n.Body,
		}).
		Post(s.endpoint)
	if err != nil {
		return fmt.Errorf("serverchan request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("serverchan response status %d: %s", resp.StatusCode(), readBodySnippet(resp.Body()))
	}

	var result serverChanResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return fmt.Errorf("decode serverchan response: %w", err)
	}
	if result.Code != 0 {
		return fmt.Errorf("serverchan rejected notification: code %d: %s", result.Code, result.Message)
	}

	s.log.DebugObj("serverchan notification delivered", "notifier_serverchan_delivery", map[string]any{
		"notifier_id": s.id,
		"title":       n.Title,
	})
	return nil
}
