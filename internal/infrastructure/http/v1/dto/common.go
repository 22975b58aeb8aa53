// Package dto contains request and response shapes shared by handlers.
// Domain models marshal themselves; only envelopes live here.
package dto

import "tradebooks/internal/core/id"

// IDResponse returns the id of a newly created entity.
type IDResponse struct {
	ID string `json:"id"`
}

// SuccessResponse is the generic acknowledgement envelope.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// BatchDeleteRequest carries the ids for a batch document delete.
type BatchDeleteRequest struct {
	IDs []id.ID `json:"ids" binding:"required,min=1"`
}
