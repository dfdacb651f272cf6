package models

import "time"

// LeadStatus follows the pipeline columns on the kanban board.
type LeadStatus string

const (
	StatusUnqualified     LeadStatus = "Unqualified"
	StatusContacted       LeadStatus = "Contacted"
	StatusQualified       LeadStatus = "Qualified"
	StatusProposalSent    LeadStatus = "Proposal Sent"
	StatusDecisionPending LeadStatus = "Decision Pending"
	StatusBooked          LeadStatus = "Booked"
	StatusLost            LeadStatus = "Lost"
)

// ValidLeadStatuses is used by controllers to validate status updates.
var ValidLeadStatuses = map[LeadStatus]bool{
	StatusUnqualified:     true,
	StatusContacted:       true,
	StatusQualified:       true,
	StatusProposalSent:    true,
	StatusDecisionPending: true,
	StatusBooked:          true,
	StatusLost:            true,
}

type LeadSource string

const (
	SourceFacebook   LeadSource = "Facebook"
	SourceWebsite    LeadSource = "Website"
	SourceGoogle     LeadSource = "Google"
	SourceSEO        LeadSource = "SEO"
	SourceManual     LeadSource = "Manual"
	SourceThirdParty LeadSource = "Third Party"
)

// Lead is an intake record. The document core only ever reads a lead
// and snapshots it; it never mutates one.
type Lead struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Source        LeadSource `json:"source"`
	Status        LeadStatus `json:"status"`
	Destination   string     `json:"destination"`
	Budget        string     `json:"budget"`
	AssignedAgent string     `json:"assignedAgent"`
	TravelDates   string     `json:"travelDates,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}
