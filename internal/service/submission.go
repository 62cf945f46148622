package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"scopeapi/internal/mailer"
	"scopeapi/internal/model"
	"scopeapi/internal/notification"
	"scopeapi/internal/repository"
	"scopeapi/internal/storage"
)

var (
	ErrIDRequired    = errors.New("id is required")
	ErrNotFound      = errors.New("submission not found")
	ErrNilSubmission = errors.New("submission record is nil")
)

const (
	submissionIDPrefix  = "submission_"
	submissionKeyPrefix = "submissions/"

	adminSubject = "New dashboard scoping submission"
	userSubject  = "Your dashboard scoping submission"

	// Resend allows two requests per second; the pause between the admin
	// and user deliveries keeps a single request under that budget.
	deliveryThrottle = time.Second
)

// SubmissionListResult is the service-level DTO for paginated submissions.
type SubmissionListResult struct {
	Items []model.Submission `json:"data"`
	Total int                `json:"total"`
}

// SubmissionService defines the use cases for handling survey submissions.
type SubmissionService interface {
	// Submit persists the record, renders the notification document, and
	// delivers it to the admin and (when a distinct user email is
	// present) the submitter. It returns an error only when persistence
	// fails — before any email is attempted; delivery failures are
	// reported inside the SubmissionResult.
	Submit(ctx context.Context, rec *model.SubmissionRecord) (*model.SubmissionResult, error)

	// List returns submission metadata using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*SubmissionListResult, error)

	// Get returns the full stored record for a submission ID.
	Get(ctx context.Context, id string) (*model.SubmissionRecord, error)
}

// submissionService is a concrete implementation of SubmissionService.
type submissionService struct {
	store      storage.Store
	repo       repository.SubmissionRepository
	notifier   mailer.Notifier
	adminEmail string

	sleep func(time.Duration) // time.Sleep, overridable in tests
}

// NewSubmissionService constructs a new SubmissionService. adminEmail is
// the fixed administrative recipient for every submission.
func NewSubmissionService(store storage.Store, repo repository.SubmissionRepository, notifier mailer.Notifier, adminEmail string) SubmissionService {
	return &submissionService{
		store:      store,
		repo:       repo,
		notifier:   notifier,
		adminEmail: adminEmail,
		sleep:      time.Sleep,
	}
}

func (s *submissionService) Submit(ctx context.Context, rec *model.SubmissionRecord) (*model.SubmissionResult, error) {
	if rec == nil {
		return nil, ErrNilSubmission
	}

	id := newSubmissionID()
	key := submissionKeyPrefix + id + ".json"

	// Work on a copy; the caller's record is never mutated.
	stored := *rec
	if stored.Timestamp == "" {
		stored.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	if stored.FileURLs == nil {
		stored.FileURLs = []string{}
	}

	if _, err := s.store.Put(ctx, key, &stored); err != nil {
		return nil, fmt.Errorf("store submission: %w", err)
	}

	sub := &model.Submission{
		ID:          id,
		UserEmail:   stored.UserEmail,
		StorageKey:  key,
		FileCount:   len(stored.FileURLs),
		SubmittedAt: submittedAt(stored.Timestamp),
	}
	if _, err := s.repo.Create(ctx, sub); err != nil {
		// Rollback: remove the stored record so index and store agree
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("index submission failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("index submission: %w", err)
	}

	doc := notification.Render(&stored)

	adminOut := s.notifier.Send(ctx, s.adminEmail, adminSubject, doc)

	// The user copy is optional: skipped when no address was supplied or
	// when it is the admin address, in which case it counts as success.
	userOut := model.EmailOutcome{Success: true}
	if stored.UserEmail != "" && !strings.EqualFold(stored.UserEmail, s.adminEmail) {
		s.sleep(deliveryThrottle)
		userOut = s.notifier.Send(ctx, stored.UserEmail, userSubject, doc)
	}

	return aggregate(id, adminOut, userOut), nil
}

// aggregate combines the two delivery outcomes into the final result.
// The record is durably stored by this point, so every branch carries
// the submission ID. Sandbox-mode provider restrictions never produce a
// hard failure, whichever recipient triggered them. First match wins.
func aggregate(id string, admin, user model.EmailOutcome) *model.SubmissionResult {
	res := &model.SubmissionResult{Success: true, SubmissionID: id}

	switch {
	case admin.Success && user.Success:
		return res

	case !user.Success && mailer.IsSandboxRestriction(user.Error):
		warning := fmt.Sprintf("the confirmation copy to the submitter was not sent (provider sandbox restriction): %s", user.Error)
		res.Warning = &warning
		return res

	case !admin.Success && mailer.IsSandboxRestriction(admin.Error):
		warning := fmt.Sprintf("notifications are restricted by provider sandbox mode: %s", admin.Error)
		res.Warning = &warning
		return res

	case !admin.Success:
		res.Success = false
		res.Error = "admin notification failed: " + admin.Error
		return res

	default:
		res.Success = false
		res.Error = "user confirmation failed: " + user.Error
		return res
	}
}

// List returns paginated submission metadata without exposing repository types.
func (s *submissionService) List(ctx context.Context, limit, offset int) (*SubmissionListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &SubmissionListResult{Items: res.Items, Total: res.Total}, nil
}

// Get loads the full stored record for a submission ID.
func (s *submissionService) Get(ctx context.Context, id string) (*model.SubmissionRecord, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var rec model.SubmissionRecord
	if err := s.store.Get(ctx, sub.StorageKey, &rec); err != nil {
		return nil, fmt.Errorf("load record: %w", err)
	}
	return &rec, nil
}

// newSubmissionID returns a collision-resistant submission identifier.
func newSubmissionID() string {
	return submissionIDPrefix + uuid.NewString()
}

// submittedAt parses the record timestamp for the metadata index,
// falling back to the current time when it is not valid RFC 3339.
func submittedAt(ts string) time.Time {
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t.UTC()
	}
	return time.Now().UTC()
}
