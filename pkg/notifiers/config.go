package notifiers

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Supported notifier types.
	TypeServerChan = "serverchan"
	TypeHTTP       = "http"
	TypeSQS        = "sqs"
	TypeSNS        = "sns"
	TypePubSub     = "pubsub"

	httpDefaultMethod         = "POST"
	httpDefaultTimeoutSeconds = 5

	serverChanDefaultTimeoutSeconds = 10
	serverChanPlaceholderKey        = "YOUR_SERVERCHAN_SENDKEY"
)

// NotifierConfig represents a single notifier entry declared in the watchlist file.
type NotifierConfig struct {
	ID         string            `json:"id" yaml:"id"`
	Type       string            `json:"type" yaml:"type"`
	Enabled    *bool             `json:"enabled" yaml:"enabled"`
	ServerChan *ServerChanConfig `json:"serverchan" yaml:"serverchan"`
	HTTP       *HTTPConfig       `json:"http" yaml:"http"`
	SQS        *SQSConfig        `json:"sqs" yaml:"sqs"`
	SNS        *SNSConfig        `json:"sns" yaml:"sns"`
	PubSub     *PubSubConfig     `json:"pubsub" yaml:"pubsub"`
}

// ServerChanConfig holds the ServerChan push gateway settings.
type ServerChanConfig struct {
	SendKey        string `json:"send_key" yaml:"send_key"`
	Endpoint       string `json:"endpoint" yaml:"endpoint"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// HTTPConfig holds generic webhook settings.
type HTTPConfig struct {
	URL            string            `json:"url" yaml:"url"`
	Method         string            `json:"method" yaml:"method"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	TimeoutSeconds int               `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// AWSConfig is shared by the SQS and SNS notifiers. Static keys are optional;
// the default credential chain is used when they are empty.
type AWSConfig struct {
	Region          string `json:"region" yaml:"region"`
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
	Endpoint        string `json:"endpoint" yaml:"endpoint"`
}

// SQSConfig holds AWS SQS specific settings.
type SQSConfig struct {
	AWSConfig `json:",inline" yaml:",inline"`
	QueueURL  string `json:"uri" yaml:"uri"`
}

// SNSConfig holds AWS SNS specific settings.
type SNSConfig struct {
	AWSConfig `json:",inline" yaml:",inline"`
	TopicARN  string `json:"topic_arn" yaml:"topic_arn"`
}

// PubSubConfig holds Google Cloud Pub/Sub settings.
type PubSubConfig struct {
	ProjectID       string `json:"project_id" yaml:"project_id"`
	Topic           string `json:"topic" yaml:"topic"`
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file"`
	Endpoint        string `json:"endpoint" yaml:"endpoint"`
}

// IsPlaceholderKey reports whether a ServerChan key was left unset or at the sample value.
func IsPlaceholderKey(key string) bool {
	key = strings.TrimSpace(key)
	return key == "" || key == serverChanPlaceholderKey
}

// ServerChanFromKey builds the implicit notifier entry for a top-level send key.
func ServerChanFromKey(key string) NotifierConfig {
	return Sanitize(NotifierConfig{
		ID:         TypeServerChan,
		Type:       TypeServerChan,
		ServerChan: &ServerChanConfig{SendKey: key},
	})
}

// Sanitize trims and normalizes the notifier config fields.
func Sanitize(cfg NotifierConfig) NotifierConfig {
	cfg.ID = strings.TrimSpace(cfg.ID)
	cfg.Type = strings.ToLower(strings.TrimSpace(cfg.Type))

	if cfg.Enabled == nil {
		def := true
		cfg.Enabled = &def
	}
	if cfg.ServerChan != nil {
		c := *cfg.ServerChan
		c.SendKey = strings.TrimSpace(c.SendKey)
		c.Endpoint = strings.TrimSpace(c.Endpoint)
		if c.TimeoutSeconds <= 0 {
			c.TimeoutSeconds = serverChanDefaultTimeoutSeconds
		}
		cfg.ServerChan = &c
	}
	if cfg.HTTP != nil {
		c := *cfg.HTTP
		c.URL = strings.TrimSpace(c.URL)
		c.Method = strings.ToUpper(strings.TrimSpace(c.Method))
		if c.Method == "" {
			c.Method = httpDefaultMethod
		}
		c.Headers = sanitizeHeaders(c.Headers)
		if c.TimeoutSeconds <= 0 {
			c.TimeoutSeconds = httpDefaultTimeoutSeconds
		}
		cfg.HTTP = &c
	}
	if cfg.SQS != nil {
		c := *cfg.SQS
		c.QueueURL = strings.TrimSpace(c.QueueURL)
		c.AWSConfig = sanitizeAWS(c.AWSConfig)
		cfg.SQS = &c
	}
	if cfg.SNS != nil {
		c := *cfg.SNS
		c.TopicARN = strings.TrimSpace(c.TopicARN)
		c.AWSConfig = sanitizeAWS(c.AWSConfig)
		cfg.SNS = &c
	}
	if cfg.PubSub != nil {
		c := *cfg.PubSub
		c.ProjectID = strings.TrimSpace(c.ProjectID)
		c.Topic = strings.TrimSpace(c.Topic)
		c.CredentialsFile = strings.TrimSpace(c.CredentialsFile)
		c.Endpoint = strings.TrimSpace(c.Endpoint)
		cfg.PubSub = &c
	}

	return cfg
}

func sanitizeAWS(c AWSConfig) AWSConfig {
	c.Region = strings.TrimSpace(c.Region)
	c.AccessKeyID = strings.TrimSpace(c.AccessKeyID)
	c.SecretAccessKey = strings.TrimSpace(c.SecretAccessKey)
	c.Endpoint = strings.TrimSpace(c.Endpoint)
	return c
}

// sanitizeHeaders trims and removes empty headers.
func sanitizeHeaders(headers map[string]string) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		key := strings.TrimSpace(k)
		val := strings.TrimSpace(v)
		if key == "" || val == "" {
			continue
		}
		out[key] = val
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Validate checks that required fields are present.
func Validate(cfg NotifierConfig) error {
	if cfg.ID == "" {
		return errors.New("id is required")
	}
	switch cfg.Type {
	case "":
		return fmt.Errorf("type is required for notifier %q", cfg.ID)
	case TypeServerChan:
		if cfg.ServerChan == nil || IsPlaceholderKey(cfg.ServerChan.SendKey) {
			return fmt.Errorf("serverchan.send_key is required for notifier %q", cfg.ID)
		}
	case TypeHTTP:
		if cfg.HTTP == nil {
			return fmt.Errorf("http config required for notifier %q", cfg.ID)
		}
		if cfg.HTTP.URL == "" {
			return fmt.Errorf("http.url is required for notifier %q", cfg.ID)
		}
	case TypeSQS:
		if cfg.SQS == nil {
			return fmt.Errorf("sqs config required for notifier %q", cfg.ID)
		}
		if cfg.SQS.QueueURL == "" {
			return fmt.Errorf("sqs.uri is required for notifier %q", cfg.ID)
		}
		if cfg.SQS.Region == "" {
			return fmt.Errorf("sqs.region is required for notifier %q", cfg.ID)
		}
	case TypeSNS:
		if cfg.SNS == nil {
			return fmt.Errorf("sns config required for notifier %q", cfg.ID)
		}
		if cfg.SNS.TopicARN == "" {
			return fmt.Errorf("sns.topic_arn is required for notifier %q", cfg.ID)
		}
		if cfg.SNS.Region == "" {
			return fmt.Errorf("sns.region is required for notifier %q", cfg.ID)
		}
	case TypePubSub:
		if cfg.PubSub == nil {
			return fmt.Errorf("pubsub config required for notifier %q", cfg.ID)
		}
		if cfg.PubSub.ProjectID == "" || cfg.PubSub.Topic == "" {
			return fmt.Errorf("pubsub.project_id and pubsub.topic are required for notifier %q", cfg.ID)
		}
	default:
		return fmt.Errorf("unsupported notifier type %q for notifier %q", cfg.Type, cfg.ID)
	}
	return nil
}

// EnabledValue returns enabled flag defaulting to true.
func (cfg NotifierConfig) EnabledValue() bool {
	if cfg.Enabled == nil {
		return true
	}
	return *cfg.Enabled
}

// Enabled returns the notifiers that are enabled.
func Enabled(cfgs []NotifierConfig) []NotifierConfig {
	out := make([]NotifierConfig, 0, len(cfgs))
	for _, cfg := range cfgs {
		if cfg.EnabledValue() {
			out = append(out, cfg)
		}
	}
	return out
}
