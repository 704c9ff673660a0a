package domain

// RFQStatus represents the lifecycle state of an RFQ / purchase-order record
type RFQStatus string

const (
	RFQStatusDraft           RFQStatus = "draft"
	RFQStatusSent            RFQStatus = "sent"
	RFQStatusQuoted          RFQStatus = "quoted"
	RFQStatusPendingApproval RFQStatus = "pending_approval"
	RFQStatusConvertedToPO   RFQStatus = "converted_to_po"
	RFQStatusClosed          RFQStatus = "closed"
)

// IsValid checks if the RFQStatus is a valid enum value
func (s RFQStatus) IsValid() bool {
	switch s {
	case RFQStatusDraft, RFQStatusSent, RFQStatusQuoted,
		RFQStatusPendingApproval, RFQStatusConvertedToPO, RFQStatusClosed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions leave this status.
func (s RFQStatus) IsTerminal() bool {
	return s == RFQStatusConvertedToPO || s == RFQStatusClosed
}

// rfqTransitions is the closed transition table. A status maps to the set of
// statuses reachable from it; anything absent is illegal.
var rfqTransitions = map[RFQStatus][]RFQStatus{
	RFQStatusDraft: {RFQStatusSent},
	RFQStatusSent:  {RFQStatusQuoted},
	// A quoted record moves forward through split adjudication: either it
	// shrinks and stays quoted, closes when its items are exhausted, or its
	// split-off purchase order is born pending approval.
	RFQStatusQuoted:          {RFQStatusQuoted, RFQStatusPendingApproval, RFQStatusClosed},
	RFQStatusPendingApproval: {RFQStatusConvertedToPO, RFQStatusQuoted},
	RFQStatusConvertedToPO:   {},
	RFQStatusClosed:          {},
}

// CanTransitionTo reports whether moving from s to target is legal.
func (s RFQStatus) CanTransitionTo(target RFQStatus) bool {
	for _, allowed := range rfqTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}
