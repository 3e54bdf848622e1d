package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cagnotte/cagnotte-api/internal/domain/cagnotte"
	"github.com/cagnotte/cagnotte-api/internal/domain/user"
)

type fakeRepo struct {
	reports map[uuid.UUID]*Report
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{reports: make(map[uuid.UUID]*Report)}
}

func (f *fakeRepo) Create(_ context.Context, r *Report) error {
	cp := *r
	f.reports[r.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Report, error) {
	r, ok := f.reports[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) List(_ context.Context, _ *ListFilter) ([]*Report, error) {
	out := make([]*Report, 0, len(f.reports))
	for _, r := range f.reports {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRepo) Count(_ context.Context, _ *ListFilter) (int, error) {
	return len(f.reports), nil
}

func (f *fakeRepo) CountByStatus(_ context.Context) (map[Status]int, error) {
	counts := make(map[Status]int)
	for _, r := range f.reports {
		counts[r.Status]++
	}
	return counts, nil
}

func (f *fakeRepo) UpdateStatusCAS(_ context.Context, id uuid.UUID, expected, next Status, adminID uuid.UUID, adminNotes string) (bool, error) {
	r, ok := f.reports[id]
	if !ok || r.Status != expected {
		return false, nil
	}
	r.Status = next
	r.AdminID = uuid.NullUUID{UUID: adminID, Valid: true}
	if adminNotes != "" {
		r.AdminNotes.String = adminNotes
		r.AdminNotes.Valid = true
	}
	r.UpdatedAt = time.Now()
	return true, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.reports[id]; !ok {
		return ErrReportNotFound
	}
	delete(f.reports, id)
	return nil
}

type fakeCagnottes struct {
	existing  map[uuid.UUID]bool
	suspended map[uuid.UUID]int
	removed   map[uuid.UUID]int
}

func newFakeCagnottes(ids ...uuid.UUID) *fakeCagnottes {
	f := &fakeCagnottes{
		existing:  make(map[uuid.UUID]bool),
		suspended: make(map[uuid.UUID]int),
		removed:   make(map[uuid.UUID]int),
	}
	for _, id := range ids {
		f.existing[id] = true
	}
	return f
}

func (f *fakeCagnottes) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return f.existing[id], nil
}

func (f *fakeCagnottes) Get(_ context.Context, id uuid.UUID) (*cagnotte.Cagnotte, error) {
	if !f.existing[id] {
		return nil, cagnotte.ErrCagnotteNotFound
	}
	status := cagnotte.StatusActive
	if f.suspended[id] > 0 {
		status = cagnotte.StatusSuspended
	}
	return &cagnotte.Cagnotte{ID: id, Status: status}, nil
}

func (f *fakeCagnottes) Suspend(_ context.Context, id uuid.UUID) error {
	if !f.existing[id] {
		return cagnotte.ErrCagnotteNotFound
	}
	f.suspended[id]++
	return nil
}

func (f *fakeCagnottes) Remove(_ context.Context, id uuid.UUID) error {
	if !f.existing[id] {
		return cagnotte.ErrCagnotteNotFound
	}
	f.removed[id]++
	delete(f.existing, id)
	return nil
}

func (f *fakeCagnottes) untouched(id uuid.UUID) bool {
	return f.suspended[id] == 0 && f.removed[id] == 0
}

type fakeUsers struct {
	users map[uuid.UUID]*user.User
}

func (f *fakeUsers) Create(_ context.Context, _ *user.User) error { return nil }

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, _ string) (*user.User, error) { return nil, nil }

func (f *fakeUsers) UpdateKYCStatus(_ context.Context, _ uuid.UUID, _ user.KYCStatus) error {
	return nil
}

func (f *fakeUsers) UpdateSuspended(_ context.Context, _ uuid.UUID, _ bool) error { return nil }

type fixture struct {
	service   *Service
	repo      *fakeRepo
	cagnottes *fakeCagnottes
	users     *fakeUsers
}

func newFixture(cagnotteIDs ...uuid.UUID) *fixture {
	repo := newFakeRepo()
	cagnottes := newFakeCagnottes(cagnotteIDs...)
	users := &fakeUsers{users: make(map[uuid.UUID]*user.User)}
	return &fixture{
		service:   NewService(repo, cagnottes, users),
		repo:      repo,
		cagnottes: cagnottes,
		users:     users,
	}
}

func (fx *fixture) seedReport(t *testing.T, cagnotteID uuid.UUID, status Status) uuid.UUID {
	t.Helper()
	id := uuid.New()
	fx.repo.reports[id] = &Report{
		ID:          id,
		CagnotteID:  cagnotteID,
		Reason:      ReasonFraud,
		Description: "this campaign collects money for a fake cause",
		Status:      status,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	return id
}

func TestCreateAnonymous(t *testing.T) {
	cagnotteID := uuid.New()
	fx := newFixture(cagnotteID)

	rep, err := fx.service.Create(context.Background(), uuid.Nil, &CreateReportRequest{
		CagnotteID:  cagnotteID,
		Reason:      ReasonSpam,
		Description: "repeated identical campaigns from the same organizer",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if rep.Status != StatusPending {
		t.Errorf("status = %s, want %s", rep.Status, StatusPending)
	}
	if rep.ReporterName != "anonymous" {
		t.Errorf("reporter name = %q, want %q", rep.ReporterName, "anonymous")
	}
}

func TestCreateDenormalizesAuthenticatedReporter(t *testing.T) {
	cagnotteID := uuid.New()
	fx := newFixture(cagnotteID)

	reporterID := uuid.New()
	fx.users.users[reporterID] = &user.User{
		ID:    reporterID,
		Email: "marie@example.com",
		Name:  "Marie Dupont",
	}

	rep, err := fx.service.Create(context.Background(), reporterID, &CreateReportRequest{
		CagnotteID:    cagnotteID,
		Reason:        ReasonFraud,
		Description:   "the medical documents shown are forged",
		ReporterName:  "ignored self-declared name",
		ReporterEmail: "ignored@example.com",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if rep.ReporterName != "Marie Dupont" || rep.ReporterEmail != "marie@example.com" {
		t.Errorf("reporter = %q <%s>, want account identity", rep.ReporterName, rep.ReporterEmail)
	}
}

func TestCreateUnknownCagnotte(t *testing.T) {
	fx := newFixture()

	_, err := fx.service.Create(context.Background(), uuid.Nil, &CreateReportRequest{
		CagnotteID:  uuid.New(),
		Reason:      ReasonOther,
		Description: "a complaint about a campaign that does not exist",
	})
	if !errors.Is(err, cagnotte.ErrCagnotteNotFound) {
		t.Fatalf("Create() error = %v, want ErrCagnotteNotFound", err)
	}
}

func TestInvestigate(t *testing.T) {
	cagnotteID := uuid.New()
	fx := newFixture(cagnotteID)
	reportID := fx.seedReport(t, cagnotteID, StatusPending)
	adminID := uuid.New()

	rep, err := fx.service.Investigate(context.Background(), reportID, adminID, "checking organizer history")
	if err != nil {
		t.Fatalf("Investigate() error = %v", err)
	}
	if rep.Status != StatusUnderReview {
		t.Errorf("status = %s, want %s", rep.Status, StatusUnderReview)
	}
	if !rep.AdminID.Valid || rep.AdminID.UUID != adminID {
		t.Error("admin ID not recorded")
	}
	if !rep.AdminNotes.Valid || rep.AdminNotes.String != "checking organizer history" {
		t.Errorf("admin notes = %+v, want recorded", rep.AdminNotes)
	}
	if !fx.cagnottes.untouched(cagnotteID) {
		t.Error("investigate must not touch the cagnotte")
	}

	// Second investigate: the report is no longer pending
	_, err = fx.service.Investigate(context.Background(), reportID, adminID, "")
	var transitionErr *InvalidTransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("second Investigate() error = %v, want InvalidTransitionError", err)
	}
	if transitionErr.Status != StatusUnderReview || transitionErr.Action != ActionInvestigate {
		t.Errorf("transition error = %+v", transitionErr)
	}
}

func TestResolveDefaultsToNoSideEffect(t *testing.T) {
	cagnotteID := uuid.New()
	fx := newFixture(cagnotteID)
	reportID := fx.seedReport(t, cagnotteID, StatusPending)

	rep, err := fx.service.Resolve(context.Background(), reportID, uuid.New(), "", "organizer provided receipts")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if rep.Status != StatusResolved {
		t.Errorf("status = %s, want %s", rep.Status, StatusResolved)
	}
	if !fx.cagnottes.untouched(cagnotteID) {
		t.Error("resolve without a cagnotte action must not touch the cagnotte")
	}
}

func TestResolveWithSuspend(t *testing.T) {
	cagnotteID := uuid.New()
	fx := newFixture(cagnotteID)
	reportID := fx.seedReport(t, cagnotteID, StatusUnderReview)

	rep, err := fx.service.Resolve(context.Background(), reportID, uuid.New(), SideEffectSuspend, "misleading description")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if rep.Status != StatusResolved {
		t.Errorf("status = %s, want %s", rep.Status, StatusResolved)
	}
	if fx.cagnottes.suspended[cagnotteID] != 1 {
		t.Errorf("cagnotte suspended %d times, want 1", fx.cagnottes.suspended[cagnotteID])
	}
}

func TestResolveWithDeleteKeepsReport(t *testing.T) {
	cagnotteID := uuid.New()
	fx := newFixture(cagnotteID)
	reportID := fx.seedReport(t, cagnotteID, StatusPending)

	rep, err := fx.service.Resolve(context.Background(), reportID, uuid.New(), SideEffectDelete, "confirmed fraud")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if rep.Status != StatusResolved {
		t.Errorf("status = %s, want %s", rep.Status, StatusResolved)
	}
	if fx.cagnottes.removed[cagnotteID] != 1 {
		t.Errorf("cagnotte removed %d times, want 1", fx.cagnottes.removed[cagnotteID])
	}
	// The report survives as the audit trail of the decision
	if _, err := fx.service.Get(context.Background(), reportID); err != nil {
		t.Errorf("Get() after resolve+delete error = %v", err)
	}
}

func TestResolveRejectsUnknownSideEffect(t *testing.T) {
	cagnotteID := uuid.New()
	fx := newFixture(cagnotteID)
	reportID := fx.seedReport(t, cagnotteID, StatusPending)

	_, err := fx.service.Resolve(context.Background(), reportID, uuid.New(), SideEffect("ARCHIVE"), "")
	if !errors.Is(err, ErrInvalidSideEffect) {
		t.Fatalf("Resolve() error = %v, want ErrInvalidSideEffect", err)
	}

	rep, _ := fx.service.Get(context.Background(), reportID)
	if rep.Status != StatusPending {
		t.Errorf("status = %s, want unchanged %s", rep.Status, StatusPending)
	}
}

func TestDismissLeavesCagnotteAlone(t *testing.T) {
	cagnotteID := uuid.New()
	fx := newFixture(cagnotteID)
	reportID := fx.seedReport(t, cagnotteID, StatusUnderReview)

	rep, err := fx.service.Dismiss(context.Background(), reportID, uuid.New(), "no evidence of wrongdoing")
	if err != nil {
		t.Fatalf("Dismiss() error = %v", err)
	}
	if rep.Status != StatusDismissed {
		t.Errorf("status = %s, want %s", rep.Status, StatusDismissed)
	}
	if !fx.cagnottes.untouched(cagnotteID) {
		t.Error("dismiss must not touch the cagnotte")
	}
}

func TestBlockAlwaysSuspends(t *testing.T) {
	cagnotteID := uuid.New()
	fx := newFixture(cagnotteID)
	reportID := fx.seedReport(t, cagnotteID, StatusPending)

	rep, err := fx.service.Block(context.Background(), reportID, uuid.New(), "obvious scam, blocking immediately")
	if err != nil {
		t.Fatalf("Block() error = %v", err)
	}
	if rep.Status != StatusResolved {
		t.Errorf("status = %s, want %s", rep.Status, StatusResolved)
	}
	if fx.cagnottes.suspended[cagnotteID] != 1 {
		t.Errorf("cagnotte suspended %d times, want 1", fx.cagnottes.suspended[cagnotteID])
	}
}

func TestActionsOnTerminalReport(t *testing.T) {
	cagnotteID := uuid.New()
	fx := newFixture(cagnotteID)
	reportID := fx.seedReport(t, cagnotteID, StatusResolved)
	adminID := uuid.New()

	calls := map[string]func() error{
		"investigate": func() error {
			_, err := fx.service.Investigate(context.Background(), reportID, adminID, "")
			return err
		},
		"resolve": func() error {
			_, err := fx.service.Resolve(context.Background(), reportID, adminID, "", "")
			return err
		},
		"dismiss": func() error {
			_, err := fx.service.Dismiss(context.Background(), reportID, adminID, "")
			return err
		},
		"block": func() error {
			_, err := fx.service.Block(context.Background(), reportID, adminID, "")
			return err
		},
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			var transitionErr *InvalidTransitionError
			if err := call(); !errors.As(err, &transitionErr) {
				t.Fatalf("error = %v, want InvalidTransitionError", err)
			}
		})
	}
	if !fx.cagnottes.untouched(cagnotteID) {
		t.Error("rejected actions must not touch the cagnotte")
	}
}

func TestDeleteFromAnyStatus(t *testing.T) {
	for _, status := range []Status{StatusPending, StatusUnderReview, StatusResolved, StatusDismissed} {
		t.Run(string(status), func(t *testing.T) {
			cagnotteID := uuid.New()
			fx := newFixture(cagnotteID)
			reportID := fx.seedReport(t, cagnotteID, status)

			if err := fx.service.Delete(context.Background(), reportID, uuid.New(), "cleanup"); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if _, err := fx.service.Get(context.Background(), reportID); !errors.Is(err, ErrReportNotFound) {
				t.Errorf("Get() after delete error = %v, want ErrReportNotFound", err)
			}
			if !fx.cagnottes.untouched(cagnotteID) {
				t.Error("delete must never touch the cagnotte")
			}
		})
	}
}

func TestDeleteMissingReport(t *testing.T) {
	fx := newFixture()
	if err := fx.service.Delete(context.Background(), uuid.New(), uuid.New(), ""); !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("Delete() error = %v, want ErrReportNotFound", err)
	}
}

func TestDetailIncludesCampaignSnapshot(t *testing.T) {
	cagnotteID := uuid.New()
	fx := newFixture(cagnotteID)
	reportID := fx.seedReport(t, cagnotteID, StatusPending)

	detail, err := fx.service.Detail(context.Background(), reportID)
	if err != nil {
		t.Fatalf("Detail() error = %v", err)
	}
	if detail.Cagnotte == nil || detail.Cagnotte.ID != cagnotteID {
		t.Fatalf("detail cagnotte = %+v, want snapshot", detail.Cagnotte)
	}

	if _, err := fx.service.Resolve(context.Background(), reportID, uuid.New(), SideEffectDelete, "confirmed fraud"); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	// Campaign gone, report kept: the snapshot degrades to nil
	detail, err = fx.service.Detail(context.Background(), reportID)
	if err != nil {
		t.Fatalf("Detail() after delete error = %v", err)
	}
	if detail.Cagnotte != nil {
		t.Errorf("detail cagnotte = %+v, want nil after campaign removal", detail.Cagnotte)
	}
	if detail.Report.Status != StatusResolved {
		t.Errorf("report status = %s, want %s", detail.Report.Status, StatusResolved)
	}
}

func TestGetMissingReport(t *testing.T) {
	fx := newFixture()
	if _, err := fx.service.Get(context.Background(), uuid.New()); !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("Get() error = %v, want ErrReportNotFound", err)
	}
}

// racingRepo makes the first CAS lose, simulating a concurrent admin who
// dismissed the report between the read and the write.
type racingRepo struct {
	*fakeRepo
	raced bool
}

func (r *racingRepo) UpdateStatusCAS(ctx context.Context, id uuid.UUID, expected, next Status, adminID uuid.UUID, adminNotes string) (bool, error) {
	if !r.raced {
		r.raced = true
		r.reports[id].Status = StatusDismissed
		return false, nil
	}
	return r.fakeRepo.UpdateStatusCAS(ctx, id, expected, next, adminID, adminNotes)
}

func TestConcurrentDecisionLosesCAS(t *testing.T) {
	cagnotteID := uuid.New()
	repo := &racingRepo{fakeRepo: newFakeRepo()}
	cagnottes := newFakeCagnottes(cagnotteID)
	service := NewService(repo, cagnottes, &fakeUsers{users: make(map[uuid.UUID]*user.User)})

	reportID := uuid.New()
	repo.reports[reportID] = &Report{
		ID:          reportID,
		CagnotteID:  cagnotteID,
		Reason:      ReasonInappropriate,
		Description: "offensive imagery on the campaign page",
		Status:      StatusPending,
	}

	_, err := service.Investigate(context.Background(), reportID, uuid.New(), "")
	var transitionErr *InvalidTransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("Investigate() error = %v, want InvalidTransitionError", err)
	}
	if transitionErr.Status != StatusDismissed {
		t.Errorf("transition error status = %s, want the winner's %s", transitionErr.Status, StatusDismissed)
	}
}

func TestListStats(t *testing.T) {
	cagnotteID := uuid.New()
	fx := newFixture(cagnotteID)
	fx.seedReport(t, cagnotteID, StatusPending)
	fx.seedReport(t, cagnotteID, StatusPending)
	fx.seedReport(t, cagnotteID, StatusUnderReview)
	fx.seedReport(t, cagnotteID, StatusResolved)

	result, err := fx.service.List(context.Background(), &ListFilter{Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Stats.Total != 4 || result.Stats.Pending != 2 || result.Stats.UnderReview != 1 || result.Stats.Resolved != 1 || result.Stats.Dismissed != 0 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if len(result.Reports) != 4 {
		t.Errorf("reports = %d, want 4", len(result.Reports))
	}
}
