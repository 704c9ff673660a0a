package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/austral-erp/procurement-api/internal/domain"
)

func TestRFQStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.RFQStatus
		to      domain.RFQStatus
		allowed bool
	}{
		{"draft can be sent", domain.RFQStatusDraft, domain.RFQStatusSent, true},
		{"draft cannot jump to quoted", domain.RFQStatusDraft, domain.RFQStatusQuoted, false},
		{"draft cannot close", domain.RFQStatusDraft, domain.RFQStatusClosed, false},
		{"sent can be quoted", domain.RFQStatusSent, domain.RFQStatusQuoted, true},
		{"sent cannot go back to draft", domain.RFQStatusSent, domain.RFQStatusDraft, false},
		{"quoted can stay quoted after a split", domain.RFQStatusQuoted, domain.RFQStatusQuoted, true},
		{"quoted can move to pending approval", domain.RFQStatusQuoted, domain.RFQStatusPendingApproval, true},
		{"quoted can close when items are exhausted", domain.RFQStatusQuoted, domain.RFQStatusClosed, true},
		{"quoted cannot convert directly", domain.RFQStatusQuoted, domain.RFQStatusConvertedToPO, false},
		{"pending approval can convert", domain.RFQStatusPendingApproval, domain.RFQStatusConvertedToPO, true},
		{"pending approval can revert to quoted", domain.RFQStatusPendingApproval, domain.RFQStatusQuoted, true},
		{"pending approval cannot close", domain.RFQStatusPendingApproval, domain.RFQStatusClosed, false},
		{"converted is final", domain.RFQStatusConvertedToPO, domain.RFQStatusQuoted, false},
		{"closed is final", domain.RFQStatusClosed, domain.RFQStatusQuoted, false},
		{"unknown status has no transitions", domain.RFQStatus("bogus"), domain.RFQStatusSent, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestRFQStatusIsTerminal(t *testing.T) {
	assert.True(t, domain.RFQStatusConvertedToPO.IsTerminal())
	assert.True(t, domain.RFQStatusClosed.IsTerminal())
	assert.False(t, domain.RFQStatusDraft.IsTerminal())
	assert.False(t, domain.RFQStatusSent.IsTerminal())
	assert.False(t, domain.RFQStatusQuoted.IsTerminal())
	assert.False(t, domain.RFQStatusPendingApproval.IsTerminal())
}

func TestRFQStatusIsValid(t *testing.T) {
	valid := []domain.RFQStatus{
		domain.RFQStatusDraft,
		domain.RFQStatusSent,
		domain.RFQStatusQuoted,
		domain.RFQStatusPendingApproval,
		domain.RFQStatusConvertedToPO,
		domain.RFQStatusClosed,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, domain.RFQStatus("").IsValid())
	assert.False(t, domain.RFQStatus("approved").IsValid())
}

func TestDocumentTypeIsValid(t *testing.T) {
	assert.True(t, domain.DocumentTypePurchaseRequest.IsValid())
	assert.True(t, domain.DocumentTypeRFQ.IsValid())
	assert.True(t, domain.DocumentTypePurchaseOrder.IsValid())
	assert.False(t, domain.DocumentType("invoice").IsValid())
}
