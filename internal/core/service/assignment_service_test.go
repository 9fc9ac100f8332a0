package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/planning-insights/editorial-system/internal/core/domain"
)

func seedEditors(users *stubUserRepo, n int) {
	for i := 1; i <= n; i++ {
		users.add(&domain.User{
			ID:    fmt.Sprintf("editor-%d", i),
			Email: fmt.Sprintf("editor%d@example.com", i),
			Name:  fmt.Sprintf("Editor %d", i),
			Role:  domain.RoleEditor,
		})
	}
}

func seedManuscripts(subs *stubSubmissionRepo, n int) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= n; i++ {
		subs.add(&domain.Submission{
			ID:        fmt.Sprintf("sub-%d", i),
			Type:      domain.TypeManuscript,
			Title:     fmt.Sprintf("Manuscript %d", i),
			Status:    domain.SubmissionPending,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
}

func TestAutoAssign_RoundRobin(t *testing.T) {
	users := newStubUserRepo()
	subs := newStubSubmissionRepo()
	seedEditors(users, 3)
	seedManuscripts(subs, 7)

	svc := NewAssignmentService(users, subs, discardLogger)
	chief := domain.Actor{ID: "chief-1", Role: domain.RoleChiefEditor}

	result, err := svc.AutoAssign(context.Background(), chief)
	if err != nil {
		t.Fatalf("AutoAssign: %v", err)
	}

	if result.Assigned != 7 || result.Editors != 3 || result.Skipped != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.PerEditor != 2 || result.Remainder != 1 {
		t.Fatalf("expected 2 per editor with remainder 1, got %+v", result)
	}

	// Oldest first, i-th submission to editor i mod 3: editor-1 gets 3.
	counts := map[string]int{}
	for i := 1; i <= 7; i++ {
		s, err := subs.FindByID(context.Background(), fmt.Sprintf("sub-%d", i))
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		counts[s.AssignedEditor]++
		if s.Status != domain.SubmissionUnderReview {
			t.Errorf("sub-%d status = %s, want under-review", i, s.Status)
		}
		if s.AssignedBy != chief.ID {
			t.Errorf("sub-%d assigned_by = %s, want %s", i, s.AssignedBy, chief.ID)
		}
	}
	if counts["editor-1"] != 3 || counts["editor-2"] != 2 || counts["editor-3"] != 2 {
		t.Fatalf("unfair distribution: %v", counts)
	}

	// Deterministic: sub-1 to editor-1, sub-2 to editor-2, sub-4 back to editor-1.
	s1, _ := subs.FindByID(context.Background(), "sub-1")
	s4, _ := subs.FindByID(context.Background(), "sub-4")
	if s1.AssignedEditor != "editor-1" || s4.AssignedEditor != "editor-1" {
		t.Fatalf("round-robin order broken: sub-1=%s sub-4=%s", s1.AssignedEditor, s4.AssignedEditor)
	}
}

func TestAutoAssign_NoEditors(t *testing.T) {
	users := newStubUserRepo()
	subs := newStubSubmissionRepo()
	seedManuscripts(subs, 3)

	svc := NewAssignmentService(users, subs, discardLogger)

	_, err := svc.AutoAssign(context.Background(), domain.Actor{ID: "chief-1", Role: domain.RoleChiefEditor})
	if !errors.Is(err, domain.ErrNoEditorsAvailable) {
		t.Fatalf("expected ErrNoEditorsAvailable, got %v", err)
	}

	// Zero mutations.
	for i := 1; i <= 3; i++ {
		s, _ := subs.FindByID(context.Background(), fmt.Sprintf("sub-%d", i))
		if s.AssignedEditor != "" || s.Status != domain.SubmissionPending {
			t.Fatalf("sub-%d mutated: %+v", i, s)
		}
	}
}

func TestAutoAssign_EmptyBacklog(t *testing.T) {
	users := newStubUserRepo()
	subs := newStubSubmissionRepo()
	seedEditors(users, 2)

	svc := NewAssignmentService(users, subs, discardLogger)

	result, err := svc.AutoAssign(context.Background(), domain.Actor{ID: "chief-1", Role: domain.RoleChiefEditor})
	if err != nil {
		t.Fatalf("AutoAssign: %v", err)
	}
	if result.Assigned != 0 || result.Skipped != 0 {
		t.Fatalf("expected zero-count summary, got %+v", result)
	}
}

func TestAutoAssign_SkipsRacedSubmission(t *testing.T) {
	users := newStubUserRepo()
	subs := newStubSubmissionRepo()
	seedEditors(users, 2)
	seedManuscripts(subs, 4)
	subs.conflictIDs["sub-2"] = true // claimed concurrently

	svc := NewAssignmentService(users, subs, discardLogger)

	result, err := svc.AutoAssign(context.Background(), domain.Actor{ID: "chief-1", Role: domain.RoleChiefEditor})
	if err != nil {
		t.Fatalf("AutoAssign: %v", err)
	}
	if result.Assigned != 3 || result.Skipped != 1 {
		t.Fatalf("expected 3 assigned 1 skipped, got %+v", result)
	}

	// Prior assignments stand despite the lost race.
	s1, _ := subs.FindByID(context.Background(), "sub-1")
	if s1.AssignedEditor == "" {
		t.Fatalf("sub-1 should remain assigned after partial batch")
	}
}

func TestAutoAssign_IncludesUnassignedPapers(t *testing.T) {
	users := newStubUserRepo()
	subs := newStubSubmissionRepo()
	seedEditors(users, 1)
	subs.add(&domain.Submission{
		ID:        "paper-1",
		Type:      domain.TypeResearchPaper,
		Status:    domain.SubmissionCompleted,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	subs.add(&domain.Submission{
		ID:        "paper-2",
		Type:      domain.TypeResearchPaper,
		Status:    domain.SubmissionAccepted, // terminal, not eligible
		CreatedAt: time.Date(2026, 1, 1, 0, 1, 0, 0, time.UTC),
	})

	svc := NewAssignmentService(users, subs, discardLogger)

	result, err := svc.AutoAssign(context.Background(), domain.Actor{ID: "chief-1", Role: domain.RoleChiefEditor})
	if err != nil {
		t.Fatalf("AutoAssign: %v", err)
	}
	if result.Assigned != 1 {
		t.Fatalf("expected only the completed paper assigned, got %+v", result)
	}

	p1, _ := subs.FindByID(context.Background(), "paper-1")
	if p1.AssignedEditor != "editor-1" || p1.Status != domain.SubmissionUnderReview {
		t.Fatalf("paper-1 not assigned: %+v", p1)
	}
	p2, _ := subs.FindByID(context.Background(), "paper-2")
	if p2.AssignedEditor != "" {
		t.Fatalf("accepted paper must not be reassigned: %+v", p2)
	}
}

func TestAssign_UnknownEditor(t *testing.T) {
	users := newStubUserRepo()
	subs := newStubSubmissionRepo()
	seedManuscripts(subs, 1)
	users.add(&domain.User{ID: "user-1", Role: domain.RoleUser})

	svc := NewAssignmentService(users, subs, discardLogger)
	chief := domain.Actor{ID: "chief-1", Role: domain.RoleChiefEditor}

	if _, err := svc.Assign(context.Background(), "sub-1", "ghost", chief); !errors.Is(err, domain.ErrEditorNotFound) {
		t.Fatalf("expected ErrEditorNotFound for missing user, got %v", err)
	}
	// Exists but is not an editor.
	if _, err := svc.Assign(context.Background(), "sub-1", "user-1", chief); !errors.Is(err, domain.ErrEditorNotFound) {
		t.Fatalf("expected ErrEditorNotFound for non-editor, got %v", err)
	}
}

func TestAssign_FlipsToUnderReview(t *testing.T) {
	users := newStubUserRepo()
	subs := newStubSubmissionRepo()
	seedEditors(users, 1)
	seedManuscripts(subs, 1)

	svc := NewAssignmentService(users, subs, discardLogger)

	s, err := svc.Assign(context.Background(), "sub-1", "editor-1", domain.Actor{ID: "chief-1", Role: domain.RoleChiefEditor})
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if s.AssignedEditor != "editor-1" || s.Status != domain.SubmissionUnderReview {
		t.Fatalf("unexpected submission state: %+v", s)
	}
}

func TestReassign_PreservesStatus(t *testing.T) {
	users := newStubUserRepo()
	subs := newStubSubmissionRepo()
	seedEditors(users, 2)
	subs.add(&domain.Submission{
		ID:             "sub-1",
		Type:           domain.TypeManuscript,
		Status:         domain.SubmissionUnderReview,
		AssignedEditor: "editor-1",
		AssignedBy:     "chief-0",
		CreatedAt:      time.Now().UTC(),
	})

	svc := NewAssignmentService(users, subs, discardLogger)

	s, err := svc.Reassign(context.Background(), "sub-1", "editor-2", domain.Actor{ID: "chief-1", Role: domain.RoleChiefEditor})
	if err != nil {
		t.Fatalf("Reassign: %v", err)
	}
	if s.AssignedEditor != "editor-2" || s.AssignedBy != "chief-1" {
		t.Fatalf("assignment not overwritten: %+v", s)
	}
	if s.Status != domain.SubmissionUnderReview {
		t.Fatalf("reassign must not touch status, got %s", s.Status)
	}
}

func TestUnassign_PerTypeReset(t *testing.T) {
	cases := []struct {
		name string
		typ  domain.SubmissionType
		want domain.SubmissionStatus
	}{
		{"manuscript", domain.TypeManuscript, domain.SubmissionPending},
		{"research paper", domain.TypeResearchPaper, domain.SubmissionCompleted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			users := newStubUserRepo()
			subs := newStubSubmissionRepo()
			subs.add(&domain.Submission{
				ID:             "sub-1",
				Type:           tc.typ,
				Status:         domain.SubmissionUnderReview,
				AssignedEditor: "editor-1",
				AssignedBy:     "chief-1",
				AssignedAt:     time.Now().UTC(),
				CreatedAt:      time.Now().UTC(),
			})

			svc := NewAssignmentService(users, subs, discardLogger)

			s, err := svc.Unassign(context.Background(), "sub-1")
			if err != nil {
				t.Fatalf("Unassign: %v", err)
			}
			if s.AssignedEditor != "" || s.AssignedBy != "" || !s.AssignedAt.IsZero() {
				t.Fatalf("assignment fields not cleared: %+v", s)
			}
			if s.Status != tc.want {
				t.Fatalf("status = %s, want %s", s.Status, tc.want)
			}
		})
	}
}

func TestListEditors_Workload(t *testing.T) {
	users := newStubUserRepo()
	subs := newStubSubmissionRepo()
	seedEditors(users, 2)
	subs.add(&domain.Submission{ID: "m1", Type: domain.TypeManuscript, Status: domain.SubmissionUnderReview, AssignedEditor: "editor-1", CreatedAt: time.Now()})
	subs.add(&domain.Submission{ID: "p1", Type: domain.TypeResearchPaper, Status: domain.SubmissionPending, AssignedEditor: "editor-1", CreatedAt: time.Now()})
	// Terminal work does not count toward the open desk.
	subs.add(&domain.Submission{ID: "m2", Type: domain.TypeManuscript, Status: domain.SubmissionAccepted, AssignedEditor: "editor-1", CreatedAt: time.Now()})

	svc := NewAssignmentService(users, subs, discardLogger)

	editors, err := svc.ListEditors(context.Background())
	if err != nil {
		t.Fatalf("ListEditors: %v", err)
	}
	if len(editors) != 2 {
		t.Fatalf("expected 2 editors, got %d", len(editors))
	}
	if editors[0].EditorID != "editor-1" || editors[0].Total != 2 {
		t.Fatalf("unexpected workload: %+v", editors[0])
	}
	if editors[1].Total != 0 {
		t.Fatalf("editor-2 should be idle: %+v", editors[1])
	}
}

func TestStats_Counts(t *testing.T) {
	users := newStubUserRepo()
	subs := newStubSubmissionRepo()
	seedEditors(users, 2)
	subs.add(&domain.Submission{ID: "m1", Type: domain.TypeManuscript, Status: domain.SubmissionPending, CreatedAt: time.Now()})
	subs.add(&domain.Submission{ID: "m2", Type: domain.TypeManuscript, Status: domain.SubmissionUnderReview, AssignedEditor: "editor-1", CreatedAt: time.Now()})
	subs.add(&domain.Submission{ID: "p1", Type: domain.TypeResearchPaper, Status: domain.SubmissionCompleted, CreatedAt: time.Now()})

	svc := NewAssignmentService(users, subs, discardLogger)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Manuscripts.Total != 2 || stats.Manuscripts.Assigned != 1 || stats.Manuscripts.Unassigned != 1 {
		t.Fatalf("manuscript stats wrong: %+v", stats.Manuscripts)
	}
	if stats.Papers.Total != 1 || stats.Papers.Assigned != 0 {
		t.Fatalf("paper stats wrong: %+v", stats.Papers)
	}
	if stats.Editors != 2 {
		t.Fatalf("editors = %d, want 2", stats.Editors)
	}
}
