// Package transport defines the wire types for the lead API. Field names are
// snake_case to stay compatible with the existing entry form and dashboard
// frontend.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateLeadRequest is the request body for creating a lead from the entry
// form. Everything the intake coordinator records is required except email,
// marketing program and notes.
type CreateLeadRequest struct {
	Date              string `json:"date" validate:"required"`
	Location          string `json:"location" validate:"required"`
	FirstName         string `json:"first_name" validate:"required"`
	LastName          string `json:"last_name" validate:"required"`
	Phone             string `json:"phone" validate:"required"`
	Email             string `json:"email"`
	ServiceType       string `json:"service_type" validate:"required"`
	PresentingProblem string `json:"presenting_problem" validate:"required"`
	ReferralSource    string `json:"referral_source" validate:"required"`
	ActionTaken       string `json:"action_taken" validate:"required"`
	ReferredTo        string `json:"referred_to" validate:"required"`
	MarketingProgram  string `json:"marketing_program"`
	ReferralOutcome   string `json:"referral_outcome" validate:"required"`
	Notes             string `json:"notes"`
}

// UpdateLeadRequest is the request body for updating a lead. All fields are
// optional; only the ones present are written.
type UpdateLeadRequest struct {
	Date              *string `json:"date,omitempty"`
	Location          *string `json:"location,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	Email             *string `json:"email,omitempty"`
	ServiceType       *string `json:"service_type,omitempty"`
	PresentingProblem *string `json:"presenting_problem,omitempty"`
	ReferralSource    *string `json:"referral_source,omitempty"`
	ActionTaken       *string `json:"action_taken,omitempty"`
	ReferredTo        *string `json:"referred_to,omitempty"`
	MarketingProgram  *string `json:"marketing_program,omitempty"`
	ReferralOutcome   *string `json:"referral_outcome,omitempty"`
	Notes             *string `json:"notes,omitempty"`
}

// LeadResponse is the response body for a lead.
type LeadResponse struct {
	ID                uuid.UUID `json:"id"`
	Date              string    `json:"date"`
	Location          string    `json:"location"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Phone             string    `json:"phone"`
	Email             string    `json:"email"`
	ServiceType       string    `json:"service_type"`
	PresentingProblem string    `json:"presenting_problem"`
	ReferralSource    string    `json:"referral_source"`
	ActionTaken       string    `json:"action_taken"`
	ReferredTo        string    `json:"referred_to"`
	MarketingProgram  string    `json:"marketing_program"`
	ReferralOutcome   string    `json:"referral_outcome"`
	Notes             string    `json:"notes"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CreateLeadResponse acknowledges a created lead.
type CreateLeadResponse struct {
	OK bool      `json:"ok"`
	ID uuid.UUID `json:"id"`
}

// UpdateLeadResponse acknowledges an updated lead and echoes the new state.
type UpdateLeadResponse struct {
	OK   bool         `json:"ok"`
	Lead LeadResponse `json:"lead"`
}

// DeleteLeadResponse acknowledges a deleted lead.
type DeleteLeadResponse struct {
	OK      bool      `json:"ok"`
	Deleted uuid.UUID `json:"deleted"`
}
