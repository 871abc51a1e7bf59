package dto

// ApprovalRequest payload for the transition endpoint.
type ApprovalRequest struct {
	Type   string  `json:"type"`
	ID     string  `json:"id"`
	Action string  `json:"action"`
	Reason string  `json:"reason,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// ApprovalResponse is the transition outcome.
type ApprovalResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
