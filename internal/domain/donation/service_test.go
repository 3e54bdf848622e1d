package donation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/cagnotte/cagnotte-api/internal/domain/cagnotte"
)

type fakeRepo struct {
	donations []*Donation
}

func (f *fakeRepo) Create(_ context.Context, d *Donation) error {
	cp := *d
	f.donations = append(f.donations, &cp)
	return nil
}

func (f *fakeRepo) ListByCagnotte(_ context.Context, cagnotteID uuid.UUID, _, _ int) ([]*Donation, error) {
	var out []*Donation
	for _, d := range f.donations {
		if d.CagnotteID == cagnotteID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeRepo) CountByCagnotte(ctx context.Context, cagnotteID uuid.UUID) (int, error) {
	list, _ := f.ListByCagnotte(ctx, cagnotteID, 0, 0)
	return len(list), nil
}

type fakeCagnotteRepo struct {
	cagnottes map[uuid.UUID]*cagnotte.Cagnotte
}

func (f *fakeCagnotteRepo) Create(_ context.Context, _ *cagnotte.Cagnotte) error { return nil }

func (f *fakeCagnotteRepo) GetByID(_ context.Context, id uuid.UUID) (*cagnotte.Cagnotte, error) {
	c, ok := f.cagnottes[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (f *fakeCagnotteRepo) List(_ context.Context, _ *cagnotte.ListFilter) ([]*cagnotte.Cagnotte, error) {
	return nil, nil
}

func (f *fakeCagnotteRepo) Count(_ context.Context, _ *cagnotte.ListFilter) (int, error) {
	return 0, nil
}

func (f *fakeCagnotteRepo) Update(_ context.Context, _ *cagnotte.Cagnotte) error { return nil }

func (f *fakeCagnotteRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _ cagnotte.Status) (bool, error) {
	return true, nil
}

func (f *fakeCagnotteRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func seedCagnotte(repo *fakeCagnotteRepo, status cagnotte.Status) uuid.UUID {
	id := uuid.New()
	repo.cagnottes[id] = &cagnotte.Cagnotte{ID: id, Status: status}
	return id
}

func newService() (*Service, *fakeRepo, *fakeCagnotteRepo) {
	repo := &fakeRepo{}
	cagnottes := &fakeCagnotteRepo{cagnottes: make(map[uuid.UUID]*cagnotte.Cagnotte)}
	return NewService(repo, cagnottes), repo, cagnottes
}

func TestDonate(t *testing.T) {
	service, _, cagnottes := newService()
	cagnotteID := seedCagnotte(cagnottes, cagnotte.StatusActive)

	d, err := service.Donate(context.Background(), cagnotteID, uuid.Nil, &CreateDonationRequest{
		Amount:  50,
		Message: "Bon courage!",
	})
	if err != nil {
		t.Fatalf("Donate() error = %v", err)
	}
	if d.DonorName != "anonymous" {
		t.Errorf("donor name = %q, want %q", d.DonorName, "anonymous")
	}
	if d.DonorID.Valid {
		t.Error("donor ID must be null for anonymous donations")
	}
	if !d.Message.Valid || d.Message.String != "Bon courage!" {
		t.Errorf("message = %+v", d.Message)
	}
}

func TestDonateOnlyWhenActive(t *testing.T) {
	for _, status := range []cagnotte.Status{
		cagnotte.StatusDraft,
		cagnotte.StatusPending,
		cagnotte.StatusSuspended,
		cagnotte.StatusRejected,
		cagnotte.StatusCompleted,
	} {
		t.Run(string(status), func(t *testing.T) {
			service, _, cagnottes := newService()
			cagnotteID := seedCagnotte(cagnottes, status)

			_, err := service.Donate(context.Background(), cagnotteID, uuid.Nil, &CreateDonationRequest{Amount: 10})
			if !errors.Is(err, ErrCagnotteNotActive) {
				t.Fatalf("Donate() error = %v, want ErrCagnotteNotActive", err)
			}
		})
	}
}

func TestDonateUnknownCagnotte(t *testing.T) {
	service, _, _ := newService()

	_, err := service.Donate(context.Background(), uuid.New(), uuid.Nil, &CreateDonationRequest{Amount: 10})
	if !errors.Is(err, cagnotte.ErrCagnotteNotFound) {
		t.Fatalf("Donate() error = %v, want ErrCagnotteNotFound", err)
	}
}

func TestDonateRejectsNonPositiveAmount(t *testing.T) {
	service, _, cagnottes := newService()
	cagnotteID := seedCagnotte(cagnottes, cagnotte.StatusActive)

	for _, amount := range []float64{0, -5} {
		_, err := service.Donate(context.Background(), cagnotteID, uuid.Nil, &CreateDonationRequest{Amount: amount})
		if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Donate(%v) error = %v, want ErrInvalidAmount", amount, err)
		}
	}
}
