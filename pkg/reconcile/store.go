// Package reconcile keeps the comment list shown to a viewer consistent while
// mutations against the backing store are still in flight. The store merges
// the last server-confirmed list with locally pending creates, edits and
// deletes; the merged view updates synchronously so the interface never waits
// on the network, and every pending change can be rolled back when its
// backing call fails.
package reconcile

import (
	"strings"

	"github.com/google/uuid"
)

// JustNowDate is the display date of a comment that has been submitted but
// not confirmed by the backing store yet.
const JustNowDate = "just now"

// SessionUser is the signed-in identity captured at submission time.
type SessionUser struct {
	Name      string
	Email     string
	AvatarURL string
}

// CommentID tags an identifier as either persistent (assigned by the backing
// store) or pending (a local placeholder token), so code never has to guess
// from the string format.
type CommentID struct {
	value   string
	pending bool
}

func PersistentID(id string) CommentID {
	return CommentID{value: id}
}

func newPendingID() CommentID {
	return CommentID{value: uuid.NewString(), pending: true}
}

func (id CommentID) String() string { return id.value }

func (id CommentID) Pending() bool { return id.pending }

type Comment struct {
	ID          CommentID
	AuthorName  string
	AuthorEmail string
	AuthorImage string
	Message     string
	DisplayDate string
}

// Store holds the reconciliation state for one post's comment list within a
// single session. It performs no I/O: callers apply an optimistic transition,
// run the backing call themselves, then confirm or roll the transition back.
// It is not safe for concurrent use; a session is a single logical actor.
type Store struct {
	confirmed      []Comment
	pendingNew     []pendingComment // newest first
	pendingEdits   map[string]string
	pendingDeletes map[string]struct{}

	// generation counts refreshes. A pending create only dedupes against
	// confirmed lists fetched after it was submitted; until then an identical
	// pre-existing comment must not swallow the new optimistic entry.
	generation int
}

type pendingComment struct {
	comment    Comment
	generation int
}

func NewStore() *Store {
	return &Store{
		pendingEdits:   make(map[string]string),
		pendingDeletes: make(map[string]struct{}),
	}
}

// Refresh replaces the confirmed list wholesale with a freshly fetched one.
// Pending state is untouched: entries drain lazily through the dedup and
// overlay logic in VisibleComments, or explicitly via the Confirm methods.
func (s *Store) Refresh(confirmed []Comment) {
	s.confirmed = append([]Comment(nil), confirmed...)
	s.generation++
}

// VisibleComments projects the displayed list: confirmed entries minus
// pending deletes, with pending edits overlaid, preceded by pending creates
// that have no confirmed counterpart yet. A pending create and a confirmed
// entry with the same message and author email describe the same act of
// commenting, and collapse to the confirmed copy since that one carries the
// persistent identifier needed for later edits and deletes.
//
// Known limitation: the message+email match cannot tell two deliberate
// identical submissions apart; the backing API offers no idempotency key to
// do better.
func (s *Store) VisibleComments() []Comment {
	overlaid := make([]Comment, 0, len(s.confirmed))
	for _, comment := range s.confirmed {
		if _, deleted := s.pendingDeletes[comment.ID.value]; deleted {
			continue
		}
		if message, edited := s.pendingEdits[comment.ID.value]; edited {
			comment.Message = message
		}
		overlaid = append(overlaid, comment)
	}

	visible := make([]Comment, 0, len(s.pendingNew)+len(overlaid))
	for _, pending := range s.pendingNew {
		if s.generation > pending.generation && hasConfirmedCounterpart(pending.comment, overlaid) {
			continue
		}
		visible = append(visible, pending.comment)
	}

	return append(visible, overlaid...)
}

func hasConfirmedCounterpart(pending Comment, confirmed []Comment) bool {
	for _, comment := range confirmed {
		if comment.Message == pending.Message && comment.AuthorEmail == pending.AuthorEmail {
			return true
		}
	}
	return false
}

// Submit optimistically inserts a new comment and returns its pending id.
// The caller issues the backing create, then either leaves the entry to
// self-dedupe against the refetched confirmed copy or rolls it back.
func (s *Store) Submit(message string, user SessionUser) (CommentID, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return CommentID{}, ErrEmptyMessage
	}

	comment := Comment{
		ID:          newPendingID(),
		AuthorName:  user.Name,
		AuthorEmail: user.Email,
		AuthorImage: user.AvatarURL,
		Message:     message,
		DisplayDate: JustNowDate,
	}
	s.pendingNew = append([]pendingComment{{comment: comment, generation: s.generation}}, s.pendingNew...)

	return comment.ID, nil
}

func (s *Store) RollbackSubmit(id CommentID) {
	s.removePendingNew(id)
}

// ConfirmSubmit drops a pending create whose confirmed counterpart the caller
// has identified in the refreshed list.
func (s *Store) ConfirmSubmit(id CommentID) {
	s.removePendingNew(id)
}

func (s *Store) removePendingNew(id CommentID) {
	for i, pending := range s.pendingNew {
		if pending.comment.ID == id {
			s.pendingNew = append(s.pendingNew[:i], s.pendingNew[i+1:]...)
			return
		}
	}
}

// Edit optimistically records new content for a confirmed comment. It returns
// false with a nil error when the message is unchanged from what is currently
// displayed, which callers treat as a cancelled edit.
func (s *Store) Edit(id CommentID, newMessage string) (bool, error) {
	if id.pending {
		return false, ErrNotYetSynced
	}

	newMessage = strings.TrimSpace(newMessage)
	if newMessage == "" {
		return false, ErrEmptyMessage
	}
	if newMessage == s.currentMessage(id) {
		return false, nil
	}

	s.pendingEdits[id.value] = newMessage

	return true, nil
}

func (s *Store) currentMessage(id CommentID) string {
	if message, ok := s.pendingEdits[id.value]; ok {
		return message
	}
	return s.currentConfirmedMessage(id)
}

func (s *Store) currentConfirmedMessage(id CommentID) string {
	for _, comment := range s.confirmed {
		if comment.ID == id {
			return comment.Message
		}
	}
	return ""
}

func (s *Store) confirmedContains(id CommentID) bool {
	for _, comment := range s.confirmed {
		if comment.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) RollbackEdit(id CommentID) {
	delete(s.pendingEdits, id.value)
}

// ConfirmEdit clears the overlay once a refreshed confirmed list reflects the
// edit. Until then the overlay stays in place for display continuity.
func (s *Store) ConfirmEdit(id CommentID) {
	delete(s.pendingEdits, id.value)
}

// Delete optimistically hides a confirmed comment.
func (s *Store) Delete(id CommentID) error {
	if id.pending {
		return ErrNotYetSynced
	}

	s.pendingDeletes[id.value] = struct{}{}

	return nil
}

// RollbackDelete makes the comment reappear in its prior position.
func (s *Store) RollbackDelete(id CommentID) {
	delete(s.pendingDeletes, id.value)
}

func (s *Store) ConfirmDelete(id CommentID) {
	delete(s.pendingDeletes, id.value)
}
