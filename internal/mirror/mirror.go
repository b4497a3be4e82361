// Package mirror keeps the WordPress-compatible candidate tables of a
// secondary database in step with the primary account store. The sync is
// best-effort and non-transactional across the two stores: the account
// write has already been committed when any of these methods run, and a
// mirror failure never rolls it back. Failures are logged and reported to
// the configured administrator address.
package mirror

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/damianut/public-InterSynergy/internal/mailer"
	"github.com/google/uuid"
)

const wpTimeLayout = "2006-01-02 15:04:05"

// CandidateMirror exposes the three candidate actions. Each returns the
// user-facing message describing the mirror outcome.
type CandidateMirror interface {
	CreateCandidateMessage(userID uuid.UUID, email string) string
	UpdateCandidateMessage(fullName string, userID uuid.UUID) string
	DeleteCandidateMessage(userID uuid.UUID) string
}

// Syncer writes to the mirror database through prepared, parameterized
// statements.
type Syncer struct {
	db         *sql.DB
	mailer     mailer.Mailer
	adminEmail string
	now        func() time.Time
}

func NewSyncer(db *sql.DB, m mailer.Mailer, adminEmail string) *Syncer {
	return &Syncer{
		db:         db,
		mailer:     m,
		adminEmail: adminEmail,
		now:        time.Now,
	}
}

// Noop is used when the mirror is disabled in config. It reports empty
// messages so no mirror notice reaches the user.
type Noop struct{}

func (Noop) CreateCandidateMessage(uuid.UUID, string) string { return "" }
func (Noop) UpdateCandidateMessage(string, uuid.UUID) string { return "" }
func (Noop) DeleteCandidateMessage(uuid.UUID) string         { return "" }

func (s *Syncer) CreateCandidateMessage(userID uuid.UUID, email string) string {
	synced, notified := s.createCandidate(userID, email)
	return outcomeMessage("create", synced, notified)
}

func (s *Syncer) UpdateCandidateMessage(fullName string, userID uuid.UUID) string {
	synced, notified := s.updateCandidate(fullName, userID)
	return outcomeMessage("update", synced, notified)
}

func (s *Syncer) DeleteCandidateMessage(userID uuid.UUID) string {
	synced, notified := s.deleteCandidate(userID)
	return outcomeMessage("delete", synced, notified)
}

// createCandidate inserts the candidate post plus the user_id metadata row
// in a single mirror-side transaction. The post title and slug carry the
// generated post id, so the insert runs first and the naming update after.
func (s *Syncer) createCandidate(userID uuid.UUID, email string) (bool, bool) {
	err := s.inTx(func(tx *sql.Tx) error {
		now := s.now().UTC().Format(wpTimeLayout)

		var postID int64
		err := tx.QueryRow(`
INSERT INTO wp_posts (
    post_author, post_date, post_date_gmt, post_content, post_title,
    post_excerpt, post_status, comment_status, ping_status, post_password,
    post_name, to_ping, pinged, post_modified, post_modified_gmt,
    post_content_filtered, post_parent, guid, menu_order, post_type,
    post_mime_type, comment_count
) VALUES ($1, $2, $2, $3, '', '', 'publish', 'closed', 'closed', '',
          '', '', '', $2, $2, '', 0, '', 0, 'candidate', '', 0)
RETURNING id`, 1, now, email).Scan(&postID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
UPDATE wp_posts
SET post_title = $1 || id, post_name = $2 || id
WHERE id = $3`, "Anonymous Candidate", "anonymous-candidate", postID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
INSERT INTO wp_postmeta (post_id, meta_key, meta_value)
VALUES ($1, 'user_id', $2)`, postID, userID.String())
		return err
	})
	return s.resolve(err)
}

// updateCandidate rewrites the post title and slug of the candidate bound
// to the given account.
func (s *Syncer) updateCandidate(fullName string, userID uuid.UUID) (bool, bool) {
	err := s.inTx(func(tx *sql.Tx) error {
		now := s.now().UTC().Format(wpTimeLayout)
		slug := slugifyName(fullName)

		_, err := tx.Exec(`
UPDATE wp_posts
SET post_title = $1,
    post_name = $2 || id,
    post_modified = $3,
    post_modified_gmt = $3
WHERE id = (
    SELECT post_id FROM wp_postmeta
    WHERE meta_key = 'user_id' AND meta_value = $4
)`, fullName, slug, now, userID.String())
		return err
	})
	return s.resolve(err)
}

func (s *Syncer) deleteCandidate(userID uuid.UUID) (bool, bool) {
	err := s.inTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
DELETE FROM wp_posts
WHERE id = (
    SELECT post_id FROM wp_postmeta
    WHERE meta_key = 'user_id' AND meta_value = $1
)`, userID.String())
		if err != nil {
			return err
		}
		_, err = tx.Exec(`
DELETE FROM wp_postmeta
WHERE meta_key = 'user_id' AND meta_value = $1`, userID.String())
		return err
	})
	return s.resolve(err)
}

func (s *Syncer) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// resolve converts a statement error into the (synced, notified) pair the
// message formatter consumes. A failed statement triggers the admin alert.
func (s *Syncer) resolve(err error) (bool, bool) {
	if err == nil {
		// Fictitious notify status; nothing had to be sent.
		return true, true
	}
	slog.Error("mirror statement failed", "error", err)
	notifyErr := s.mailer.Send(
		s.adminEmail,
		"Candidate mirror statement failed",
		err.Error(),
	)
	if notifyErr != nil {
		slog.Error("mirror failure alert not delivered", "error", notifyErr)
	}
	return false, notifyErr == nil
}

// slugifyName lowercases the full name and replaces spaces with hyphens,
// producing the post_name prefix the candidate posts use.
func slugifyName(fullName string) string {
	return strings.ToLower(strings.ReplaceAll(fullName, " ", "-"))
}

var actionNouns = map[string]string{
	"create": "creation",
	"update": "update",
	"delete": "deletion",
}

func outcomeMessage(action string, synced, notified bool) string {
	noun := actionNouns[action]
	switch {
	case synced:
		return fmt.Sprintf("Candidate profile %s in the content mirror succeeded.", noun)
	case notified:
		return fmt.Sprintf("Candidate profile %s in the content mirror failed. The administrator has been notified.", noun)
	default:
		return fmt.Sprintf("Candidate profile %s in the content mirror failed. Notifying the administrator failed as well.", noun)
	}
}
