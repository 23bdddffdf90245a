package reconcile

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Backend is the comment persistence edge the controller drives. The service
// behind it enforces authorization; CanEdit and CanDelete only exist so a
// caller can hide affordances the request would be rejected for anyway.
type Backend interface {
	ListComments(ctx context.Context, postSlug string) ([]Comment, error)
	CreateComment(ctx context.Context, postSlug string, comment Comment) error
	UpdateComment(ctx context.Context, commentID string, message string) error
	DeleteComment(ctx context.Context, commentID string) error
}

// Controller composes a Store with a Backend: each mutation is applied
// optimistically, sent over the backend under a per-call timeout, and rolled
// back when the call fails. On success the confirmed list is refreshed.
// Failures of one in-flight operation never touch the pending state of
// another, since every pending change is tracked by its own id.
type Controller struct {
	store    *Store
	backend  Backend
	postSlug string
	timeout  time.Duration
}

func NewController(backend Backend, postSlug string) *Controller {
	return &Controller{
		store:    NewStore(),
		backend:  backend,
		postSlug: postSlug,
		timeout:  defaultTimeout,
	}
}

// Comments returns the currently displayed list.
func (c *Controller) Comments() []Comment {
	return c.store.VisibleComments()
}

func (c *Controller) Refresh(ctx context.Context) error {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	confirmed, err := c.backend.ListComments(callCtx, c.postSlug)
	if err != nil {
		return err
	}

	c.store.Refresh(confirmed)

	return nil
}

func (c *Controller) Submit(ctx context.Context, message string, user SessionUser) error {
	id, err := c.store.Submit(message, user)
	if err != nil {
		return err
	}

	comment := Comment{
		ID:          id,
		AuthorName:  user.Name,
		AuthorEmail: user.Email,
		AuthorImage: user.AvatarURL,
		Message:     strings.TrimSpace(message),
		DisplayDate: JustNowDate,
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.backend.CreateComment(callCtx, c.postSlug, comment); err != nil {
		c.store.RollbackSubmit(id)
		return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}

	// The optimistic entry stays in place: once the refreshed confirmed list
	// contains the stored copy, the projection collapses the pair.
	c.refreshConfirmed(ctx)

	return nil
}

func (c *Controller) Edit(ctx context.Context, id CommentID, newMessage string) error {
	changed, err := c.store.Edit(id, newMessage)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.backend.UpdateComment(callCtx, id.String(), strings.TrimSpace(newMessage)); err != nil {
		c.store.RollbackEdit(id)
		return fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}

	// The overlay stays in place for display continuity until the refreshed
	// confirmed list reflects the edit.
	if c.refreshConfirmed(ctx) && c.store.currentConfirmedMessage(id) == strings.TrimSpace(newMessage) {
		c.store.ConfirmEdit(id)
	}

	return nil
}

func (c *Controller) Delete(ctx context.Context, id CommentID) error {
	if err := c.store.Delete(id); err != nil {
		return err
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.backend.DeleteComment(callCtx, id.String()); err != nil {
		c.store.RollbackDelete(id)
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}

	if c.refreshConfirmed(ctx) && !c.store.confirmedContains(id) {
		c.store.ConfirmDelete(id)
	}

	return nil
}

// refreshConfirmed is best-effort after a successful mutation: when the fetch
// fails, the optimistic state keeps the display correct until the next
// successful refresh.
func (c *Controller) refreshConfirmed(ctx context.Context) bool {
	return c.Refresh(ctx) == nil
}

// CanEdit reports whether the edit affordance should be shown: only the
// comment's author may edit it.
func CanEdit(user SessionUser, comment Comment) bool {
	return user.Email != "" && user.Email == comment.AuthorEmail
}

// CanDelete reports whether the delete affordance should be shown: the
// comment's author, or the blog owner for any comment.
func CanDelete(user SessionUser, comment Comment, ownerEmail string) bool {
	if CanEdit(user, comment) {
		return true
	}
	return user.Email != "" && user.Email == ownerEmail
}
