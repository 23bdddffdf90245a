package reconcile

import "errors"

var (
	// ErrEmptyMessage rejects blank input before any network call is made.
	ErrEmptyMessage = errors.New("comment message must not be empty")
	// ErrNotYetSynced means the target comment only exists locally and has no
	// persistent identifier to mutate yet.
	ErrNotYetSynced = errors.New("comment is not synced with the server yet")

	ErrSubmitFailed = errors.New("failed to submit comment")
	ErrUpdateFailed = errors.New("failed to update comment")
	ErrDeleteFailed = errors.New("failed to delete comment")
)
