package models

// WorkflowNotifyInput is the terminal completion notification posted to the
// configured callback URL. Sent best-effort: notify failures never fail the
// workflow that emitted them.
type WorkflowNotifyInput struct {
	WorkflowID string                 `json:"workflow_id"`
	Workflow   string                 `json:"workflow"`
	Status     string                 `json:"status"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}
