package service

import (
	"context"
	"testing"
	"time"

	"bayview_dashboard_backend/internal/leads/repository"
	"bayview_dashboard_backend/internal/leads/transport"
	"bayview_dashboard_backend/platform/apperr"

	"github.com/google/uuid"
)

type fakeLeadStore struct {
	leads map[uuid.UUID]*repository.Lead
}

func newFakeLeadStore() *fakeLeadStore {
	return &fakeLeadStore{leads: map[uuid.UUID]*repository.Lead{}}
}

func (f *fakeLeadStore) Create(ctx context.Context, l *repository.Lead) error {
	f.leads[l.ID] = l
	return nil
}

func (f *fakeLeadStore) GetByID(ctx context.Context, id uuid.UUID) (*repository.Lead, error) {
	l, ok := f.leads[id]
	if !ok {
		return nil, apperr.NotFound("lead not found")
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLeadStore) Update(ctx context.Context, l *repository.Lead) error {
	if _, ok := f.leads[l.ID]; !ok {
		return apperr.NotFound("lead not found")
	}
	f.leads[l.ID] = l
	return nil
}

func (f *fakeLeadStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.leads[id]; !ok {
		return apperr.NotFound("lead not found")
	}
	delete(f.leads, id)
	return nil
}

func (f *fakeLeadStore) ListPending(ctx context.Context, days int) ([]*repository.Lead, error) {
	return f.all(), nil
}

func (f *fakeLeadStore) ListRecent(ctx context.Context, days int) ([]*repository.Lead, error) {
	return f.all(), nil
}

func (f *fakeLeadStore) ListAll(ctx context.Context) ([]*repository.Lead, error) {
	return f.all(), nil
}

func (f *fakeLeadStore) all() []*repository.Lead {
	out := make([]*repository.Lead, 0, len(f.leads))
	for _, l := range f.leads {
		out = append(out, l)
	}
	return out
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createRequest() transport.CreateLeadRequest {
	return transport.CreateLeadRequest{
		Date:              "2026-08-25",
		Location:          "Fort Lauderdale",
		FirstName:         "A",
		LastName:          "B",
		Phone:             "555-0100",
		ServiceType:       "Individual Therapy",
		PresentingProblem: "Anxiety",
		ReferralSource:    "Google",
		ActionTaken:       "Scheduled",
		ReferredTo:        "Nicole",
		ReferralOutcome:   "Booked",
	}
}

func TestCreateStoresLeadAndDefaultsMarketing(t *testing.T) {
	store := newFakeLeadStore()
	svc := New(store)

	resp, err := svc.Create(context.Background(), createRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !resp.OK || resp.ID == uuid.Nil {
		t.Fatalf("Create response = %+v, want ok with id", resp)
	}

	stored, ok := store.leads[resp.ID]
	if !ok {
		t.Fatalf("lead was not stored")
	}
	if got := stored.Date.Format("2006-01-02"); got != "2026-08-25" {
		t.Errorf("stored date = %s, want 2026-08-25", got)
	}
	if stored.MarketingProgram != "No" {
		t.Errorf("marketing program = %q, want default %q", stored.MarketingProgram, "No")
	}
}

func TestCreateRejectsUnparseableDate(t *testing.T) {
	svc := New(newFakeLeadStore())

	req := createRequest()
	req.Date = "not-a-date"
	if _, err := svc.Create(context.Background(), req); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("Create with bad date: err = %v, want validation error", err)
	}
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	store := newFakeLeadStore()
	svc := New(store)

	created, err := svc.Create(context.Background(), createRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	outcome := "Called, waiting to hear back"
	resp, err := svc.Update(context.Background(), created.ID, transport.UpdateLeadRequest{
		ReferralOutcome: &outcome,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if resp.Lead.ReferralOutcome != outcome {
		t.Errorf("outcome = %q, want %q", resp.Lead.ReferralOutcome, outcome)
	}
	if resp.Lead.Location != "Fort Lauderdale" {
		t.Errorf("location changed to %q on a partial update", resp.Lead.Location)
	}
}

func TestUpdateRejectsUnparseableDate(t *testing.T) {
	store := newFakeLeadStore()
	svc := New(store)

	created, err := svc.Create(context.Background(), createRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	bad := "13/45/2026"
	if _, err := svc.Update(context.Background(), created.ID, transport.UpdateLeadRequest{Date: &bad}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("Update with bad date: err = %v, want validation error", err)
	}
}

func TestGetMissingLeadIsNotFound(t *testing.T) {
	svc := New(newFakeLeadStore())

	if _, err := svc.Get(context.Background(), uuid.New()); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("Get missing: err = %v, want not found", err)
	}
}

func TestDeleteEchoesID(t *testing.T) {
	store := newFakeLeadStore()
	svc := New(store)

	created, err := svc.Create(context.Background(), createRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	resp, err := svc.Delete(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !resp.OK || resp.Deleted != created.ID {
		t.Fatalf("Delete response = %+v, want ok with id %s", resp, created.ID)
	}
	if _, err := svc.Get(context.Background(), created.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("Get after delete: err = %v, want not found", err)
	}
}

func TestDashboardLeadsNormalizesStoredRows(t *testing.T) {
	store := newFakeLeadStore()
	svc := New(store)

	req := createRequest()
	req.Location = "ftl office"
	req.MarketingProgram = "Yes"
	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("Create: %v", err)
	}

	leads, err := svc.DashboardLeads(context.Background(), day(2026, 8, 27))
	if err != nil {
		t.Fatalf("DashboardLeads: %v", err)
	}
	if len(leads) != 1 {
		t.Fatalf("got %d dashboard leads, want 1", len(leads))
	}
	l := leads[0]
	if l.Location != "Fort Lauderdale" {
		t.Errorf("location = %q, want normalized %q", l.Location, "Fort Lauderdale")
	}
	if !l.Booked {
		t.Errorf("lead with booked outcome should count as booked")
	}
	if l.Marketing != "Yes" {
		t.Errorf("marketing = %q, want %q", l.Marketing, "Yes")
	}
}
