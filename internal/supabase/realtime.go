package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// Supabase Go client has no direct Realtime publish; database writes
	// trigger Realtime automatically. Explicit publishing can move to the
	// Realtime REST API if clients need out-of-band events.
	return nil
}

// PublishSessionEvent pushes one advisory studio event on the user's channel.
func (r *RealtimeClient) PublishSessionEvent(userID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("studio:%s", userID.String())
	return r.PublishEvent(channel, event, payload)
}

// Event payloads
func GenerationProgressPayload(state string, progress int, note string) map[string]interface{} {
	return map[string]interface{}{
		"state":    state,
		"progress": progress,
		"note":     note,
	}
}

func GenerationCompletePayload(batchSize int, instruction string) map[string]interface{} {
	return map[string]interface{}{
		"status":      "complete",
		"progress":    100,
		"batch_size":  batchSize,
		"instruction": instruction,
	}
}

func GenerationFailedPayload(errorMsg string) map[string]interface{} {
	return map[string]interface{}{
		"status": "failed",
		"error":  errorMsg,
	}
}

func ProjectSavedPayload(projectID string) map[string]interface{} {
	return map[string]interface{}{
		"status":     "saved",
		"project_id": projectID,
	}
}
