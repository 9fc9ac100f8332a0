package domain

import "time"

// RequestStatus is the role-request lifecycle state.
//
//	pending → approved | rejected
//
// A resolved request is never resolved again.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// RoleRequest is a user's petition for a higher-privilege role.
// At most one pending request may exist per (userId, requestedRole) pair.
type RoleRequest struct {
	ID            string        `json:"id" bson:"_id,omitempty"`
	UserID        string        `json:"user_id" bson:"user_id"`
	RequestedRole Role          `json:"requested_role" bson:"requested_role"`
	Reason        string        `json:"reason" bson:"reason"`
	Status        RequestStatus `json:"status" bson:"status"`
	ReviewedBy    string        `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	ReviewedAt    time.Time     `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
	AdminNotes    string        `json:"admin_notes,omitempty" bson:"admin_notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at"`
}
