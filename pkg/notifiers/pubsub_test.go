package notifiers

import (
	"context"
	"testing"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
)

func TestPubSubNotifierPublishes(t *testing.T) {
	// Use the in-memory Pub/Sub emulator.
	server := pstest.NewServer()
	defer server.Close()
	t.Setenv("PUBSUB_EMULATOR_HOST", server.Addr)

	ctx := context.Background()
	client, err := pubsub.NewClient(ctx, "test-project")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	defer client.Close()
	if _, err := client.CreateTopic(ctx, "announcements"); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	n, err := newPubSubNotifier(ctx, Sanitize(NotifierConfig{
		ID:     "gcp",
		Type:   TypePubSub,
		PubSub: &PubSubConfig{ProjectID: "test-project", Topic: "announcements"},
	}), nil)
	if err != nil {
		t.Fatalf("newPubSubNotifier: %v", err)
	}
	defer n.(*pubsubNotifier).Close()

	if err := n.Notify(ctx, sampleNotification); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	msgs := server.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 published message, got %d", len(msgs))
	}
	if msgs[0].Attributes["site_name"] != "SiteA" {
		t.Fatalf("unexpected attributes %#v", msgs[0].Attributes)
	}
}
