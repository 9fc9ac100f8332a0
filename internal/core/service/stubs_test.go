package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/planning-insights/editorial-system/internal/core/domain"
	"github.com/planning-insights/editorial-system/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users      map[string]*domain.User
	setRoleErr error // if set, SetRole returns this error
	findErr    error // if set, FindByID returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) add(u *domain.User) {
	clone := *u
	r.users[u.ID] = &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	clone := *user
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	}
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindEditors(_ context.Context) ([]*domain.User, error) {
	var editors []*domain.User
	for _, u := range r.users {
		if u.Role == domain.RoleEditor {
			clone := *u
			editors = append(editors, &clone)
		}
	}
	sort.Slice(editors, func(i, j int) bool { return editors[i].ID < editors[j].ID })
	return editors, nil
}

func (r *stubUserRepo) SetRole(_ context.Context, userID string, role domain.Role) error {
	if r.setRoleErr != nil {
		return r.setRoleErr
	}
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) SetRoleIfCurrent(_ context.Context, userID string, current, next domain.Role) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if u.Role != current {
		return domain.ErrRoleMismatch
	}
	u.Role = next
	return nil
}

type stubSubmissionRepo struct {
	subs        map[string]*domain.Submission
	seq         int
	conflictIDs map[string]bool // AssignIfUnassigned fails with ErrConflict for these ids
	reviewErr   error           // if set, ApplyReview returns this error
}

func newStubSubmissionRepo() *stubSubmissionRepo {
	return &stubSubmissionRepo{
		subs:        make(map[string]*domain.Submission),
		conflictIDs: make(map[string]bool),
	}
}

func (r *stubSubmissionRepo) add(s *domain.Submission) {
	clone := *s
	r.subs[s.ID] = &clone
}

func (r *stubSubmissionRepo) Create(_ context.Context, s *domain.Submission) (*domain.Submission, error) {
	r.seq++
	clone := *s
	clone.ID = fmt.Sprintf("sub-%d", r.seq)
	r.subs[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubSubmissionRepo) FindByID(_ context.Context, id string) (*domain.Submission, error) {
	s, ok := r.subs[id]
	if !ok {
		return nil, domain.ErrSubmissionNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSubmissionRepo) List(_ context.Context, f ports.ListSubmissionsFilter) ([]*domain.Submission, int64, error) {
	var matched []*domain.Submission
	for _, s := range r.subs {
		if f.Type != "" && s.Type != f.Type {
			continue
		}
		if f.Status != "" && s.Status != f.Status {
			continue
		}
		if f.EditorID != "" && s.AssignedEditor != f.EditorID {
			continue
		}
		if f.Assigned != nil {
			if *f.Assigned != (s.AssignedEditor != "") {
				continue
			}
		}
		clone := *s
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return matched, int64(len(matched)), nil
}

func (r *stubSubmissionRepo) FindUnassigned(_ context.Context) ([]*domain.Submission, error) {
	var matched []*domain.Submission
	for _, s := range r.subs {
		if s.AssignedEditor != "" {
			continue
		}
		eligible := (s.Type == domain.TypeManuscript &&
			(s.Status == domain.SubmissionPending || s.Status == domain.SubmissionUnderReview)) ||
			(s.Type == domain.TypeResearchPaper && s.Status == domain.SubmissionCompleted)
		if !eligible {
			continue
		}
		clone := *s
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })
	return matched, nil
}

func (r *stubSubmissionRepo) AssignIfUnassigned(_ context.Context, id string, a domain.Assignment) error {
	if r.conflictIDs[id] {
		return domain.ErrConflict
	}
	s, ok := r.subs[id]
	if !ok {
		return domain.ErrSubmissionNotFound
	}
	if s.AssignedEditor != "" {
		return domain.ErrConflict
	}
	s.AssignedEditor = a.EditorID
	s.AssignedBy = a.AssignedBy
	s.AssignedAt = a.AssignedAt
	s.Status = domain.SubmissionUnderReview
	return nil
}

func (r *stubSubmissionRepo) SetAssignment(_ context.Context, id string, a domain.Assignment, status *domain.SubmissionStatus) error {
	s, ok := r.subs[id]
	if !ok {
		return domain.ErrSubmissionNotFound
	}
	s.AssignedEditor = a.EditorID
	s.AssignedBy = a.AssignedBy
	s.AssignedAt = a.AssignedAt
	if status != nil {
		s.Status = *status
	}
	return nil
}

func (r *stubSubmissionRepo) ClearAssignment(_ context.Context, id string, reset domain.SubmissionStatus) error {
	s, ok := r.subs[id]
	if !ok {
		return domain.ErrSubmissionNotFound
	}
	s.AssignedEditor = ""
	s.AssignedBy = ""
	s.AssignedAt = time.Time{}
	s.Status = reset
	return nil
}

func (r *stubSubmissionRepo) ApplyReview(_ context.Context, id string, expect domain.SubmissionStatus, patch ports.ReviewPatch) error {
	if r.reviewErr != nil {
		return r.reviewErr
	}
	s, ok := r.subs[id]
	if !ok {
		return domain.ErrSubmissionNotFound
	}
	if s.Status != expect {
		return domain.ErrConflict
	}
	s.Status = patch.Status
	s.ReviewedBy = patch.ReviewedBy
	s.ReviewedAt = patch.ReviewedAt
	if patch.EditorRemarks != nil {
		s.EditorRemarks = *patch.EditorRemarks
	}
	if patch.EditorReviewedAt != nil {
		s.EditorReviewedAt = *patch.EditorReviewedAt
	}
	if patch.AdminRemarks != nil {
		s.AdminRemarks = *patch.AdminRemarks
	}
	return nil
}

func (r *stubSubmissionRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.subs[id]; !ok {
		return domain.ErrSubmissionNotFound
	}
	delete(r.subs, id)
	return nil
}

func (r *stubSubmissionRepo) CountAssigned(_ context.Context, editorID string, statuses []domain.SubmissionStatus, t domain.SubmissionType) (int64, error) {
	var n int64
	for _, s := range r.subs {
		if s.AssignedEditor != editorID || s.Type != t {
			continue
		}
		for _, st := range statuses {
			if s.Status == st {
				n++
				break
			}
		}
	}
	return n, nil
}

func (r *stubSubmissionRepo) CountByStatus(_ context.Context, t domain.SubmissionType) (map[domain.SubmissionStatus]int64, error) {
	counts := make(map[domain.SubmissionStatus]int64)
	for _, s := range r.subs {
		if s.Type == t {
			counts[s.Status]++
		}
	}
	return counts, nil
}

func (r *stubSubmissionRepo) CountAssignedTotal(_ context.Context, t domain.SubmissionType) (int64, error) {
	var n int64
	for _, s := range r.subs {
		if s.Type == t && s.AssignedEditor != "" {
			n++
		}
	}
	return n, nil
}

type stubRequirementRepo struct {
	counts map[string]int
	decErr error // if set, DecrementSubmissions returns this error
}

func newStubRequirementRepo() *stubRequirementRepo {
	return &stubRequirementRepo{counts: make(map[string]int)}
}

func (r *stubRequirementRepo) DecrementSubmissions(_ context.Context, requirementID string) error {
	if r.decErr != nil {
		return r.decErr
	}
	r.counts[requirementID]--
	return nil
}

type stubRoleRequestRepo struct {
	requests map[string]*domain.RoleRequest
	seq      int
}

func newStubRoleRequestRepo() *stubRoleRequestRepo {
	return &stubRoleRequestRepo{requests: make(map[string]*domain.RoleRequest)}
}

func (r *stubRoleRequestRepo) add(req *domain.RoleRequest) {
	clone := *req
	r.requests[req.ID] = &clone
}

func (r *stubRoleRequestRepo) Create(_ context.Context, req *domain.RoleRequest) (*domain.RoleRequest, error) {
	r.seq++
	clone := *req
	clone.ID = fmt.Sprintf("req-%d", r.seq)
	r.requests[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubRoleRequestRepo) FindByID(_ context.Context, id string) (*domain.RoleRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	clone := *req
	return &clone, nil
}

func (r *stubRoleRequestRepo) List(_ context.Context, f ports.ListRoleRequestsFilter) ([]*domain.RoleRequest, int64, error) {
	var matched []*domain.RoleRequest
	for _, req := range r.requests {
		if f.Status != "" && req.Status != f.Status {
			continue
		}
		if f.UserID != "" && req.UserID != f.UserID {
			continue
		}
		clone := *req
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, int64(len(matched)), nil
}

func (r *stubRoleRequestRepo) HasPending(_ context.Context, userID string, role domain.Role) (bool, error) {
	for _, req := range r.requests {
		if req.UserID == userID && req.RequestedRole == role && req.Status == domain.RequestPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRoleRequestRepo) Resolve(_ context.Context, id string, res ports.Resolution) error {
	req, ok := r.requests[id]
	if !ok {
		return domain.ErrRequestNotFound
	}
	if req.Status != domain.RequestPending {
		return domain.ErrAlreadyReviewed
	}
	req.Status = res.Status
	req.ReviewedBy = res.ReviewedBy
	req.ReviewedAt = res.ReviewedAt
	req.AdminNotes = res.AdminNotes
	return nil
}

func (r *stubRoleRequestRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.requests[id]; !ok {
		return domain.ErrRequestNotFound
	}
	delete(r.requests, id)
	return nil
}

func (r *stubRoleRequestRepo) CountByStatus(_ context.Context) (map[domain.RequestStatus]int64, error) {
	counts := make(map[domain.RequestStatus]int64)
	for _, req := range r.requests {
		counts[req.Status]++
	}
	return counts, nil
}

type stubArticleRepo struct {
	articles map[string]*domain.Article
	seq      int
}

func newStubArticleRepo() *stubArticleRepo {
	return &stubArticleRepo{articles: make(map[string]*domain.Article)}
}

func (r *stubArticleRepo) add(a *domain.Article) {
	clone := *a
	r.articles[a.ID] = &clone
}

func (r *stubArticleRepo) Create(_ context.Context, a *domain.Article) (*domain.Article, error) {
	r.seq++
	clone := *a
	clone.ID = fmt.Sprintf("art-%d", r.seq)
	r.articles[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubArticleRepo) FindByID(_ context.Context, id string) (*domain.Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubArticleRepo) List(_ context.Context, f ports.ListArticlesFilter) ([]*domain.Article, int64, error) {
	var matched []*domain.Article
	for _, a := range r.articles {
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.ApprovalStatus != "" && a.ApprovalStatus != f.ApprovalStatus {
			continue
		}
		if f.AuthorID != "" && a.AuthorID != f.AuthorID {
			continue
		}
		if f.Category != "" && a.Category != f.Category {
			continue
		}
		clone := *a
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, int64(len(matched)), nil
}

func (r *stubArticleRepo) Publish(_ context.Context, id, reviewedBy string, now time.Time) (*domain.Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	a.Status = domain.ArticlePublished
	a.ApprovalStatus = domain.ApprovalApproved
	a.IsPublished = true
	a.PublishedAt = now
	a.ReviewedBy = reviewedBy
	a.ReviewedAt = now
	a.UpdatedAt = now
	a.RejectionReason = ""
	a.ModificationNotes = ""
	clone := *a
	return &clone, nil
}

func (r *stubArticleRepo) Reject(_ context.Context, id, reviewedBy, reason string, now time.Time) (*domain.Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	a.Status = domain.ArticleDraft
	a.ApprovalStatus = domain.ApprovalRejected
	a.IsPublished = false
	a.PublishedAt = time.Time{}
	a.RejectionReason = reason
	a.ReviewedBy = reviewedBy
	a.ReviewedAt = now
	a.UpdatedAt = now
	clone := *a
	return &clone, nil
}

func (r *stubArticleRepo) RequestModification(_ context.Context, id, reviewedBy, notes string, now time.Time) (*domain.Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	a.Status = domain.ArticleDraft
	a.ApprovalStatus = domain.ApprovalNeedsModification
	a.IsPublished = false
	a.ModificationNotes = notes
	a.ReviewedBy = reviewedBy
	a.ReviewedAt = now
	a.UpdatedAt = now
	clone := *a
	return &clone, nil
}

func (r *stubArticleRepo) UpdateContent(_ context.Context, id string, patch ports.ArticlePatch, resetApproval bool, now time.Time) (*domain.Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Excerpt != nil {
		a.Excerpt = *patch.Excerpt
	}
	if patch.Content != nil {
		a.Content = *patch.Content
	}
	if patch.Category != nil {
		a.Category = *patch.Category
	}
	if patch.Tags != nil {
		a.Tags = *patch.Tags
	}
	if resetApproval {
		a.ApprovalStatus = domain.ApprovalPending
		a.Status = domain.ArticlePending
		a.IsPublished = false
		a.ModificationNotes = ""
		a.RejectionReason = ""
		a.PublishedAt = time.Time{}
	}
	a.UpdatedAt = now
	clone := *a
	return &clone, nil
}

// recordingNotifier captures every notification for assertions.
type recordingNotifier struct {
	sent []ports.Notification
}

func (n *recordingNotifier) Notify(notification ports.Notification) {
	n.sent = append(n.sent, notification)
}
