package service

import "errors"

// Common service errors
var (
	// ErrPermissionDenied is returned when a user doesn't have permission for an action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrIllegalTransition is returned when a document status change is not
	// permitted from its current status
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrStaleRFQ is returned when a lifecycle mutation carries a version
	// that no longer matches the stored document
	ErrStaleRFQ = errors.New("rfq was modified by another user")

	// ErrMissingTargetSuppliers is returned when an RFQ is sent or quoted
	// while some item has no target supplier
	ErrMissingTargetSuppliers = errors.New("items without target suppliers")

	// ErrUnknownItemKeys is returned when an adjudication names item keys
	// not present on the RFQ
	ErrUnknownItemKeys = errors.New("unknown item keys")

	// ErrNoApprovalRule is returned when no approval rule band covers an amount
	ErrNoApprovalRule = errors.New("no approval rule covers this amount")

	// ErrNoActiveContract is returned when a direct award finds an item with
	// no active contract
	ErrNoActiveContract = errors.New("item has no active contract")

	// ErrRequestNotPending is returned when a grouped or awarded purchase
	// request is not in pending status
	ErrRequestNotPending = errors.New("purchase request is not pending")
)
