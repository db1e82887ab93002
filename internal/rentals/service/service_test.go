package service

import (
	"context"
	"testing"
	"time"

	"bayview_dashboard_backend/internal/rentals/domain"
	"bayview_dashboard_backend/internal/rentals/repository"
	"bayview_dashboard_backend/internal/rentals/transport"
	"bayview_dashboard_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fakeEntryStore struct {
	entries map[uuid.UUID]*repository.Entry
}

func newFakeEntryStore() *fakeEntryStore {
	return &fakeEntryStore{entries: map[uuid.UUID]*repository.Entry{}}
}

func (f *fakeEntryStore) Create(ctx context.Context, e *repository.Entry) error {
	f.entries[e.ID] = e
	return nil
}

func (f *fakeEntryStore) CreateBulk(ctx context.Context, entries []*repository.Entry) error {
	for _, e := range entries {
		f.entries[e.ID] = e
	}
	return nil
}

func (f *fakeEntryStore) GetByID(ctx context.Context, id uuid.UUID) (*repository.Entry, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, apperr.NotFound("rental entry not found")
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEntryStore) Update(ctx context.Context, e *repository.Entry) error {
	if _, ok := f.entries[e.ID]; !ok {
		return apperr.NotFound("rental entry not found")
	}
	f.entries[e.ID] = e
	return nil
}

func (f *fakeEntryStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.entries[id]; !ok {
		return apperr.NotFound("rental entry not found")
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeEntryStore) ListByWeek(ctx context.Context, weekStart time.Time, weekEnd *time.Time) ([]*repository.Entry, error) {
	out := make([]*repository.Entry, 0)
	for _, e := range f.entries {
		if !e.WeekStart.Equal(weekStart) {
			continue
		}
		if weekEnd != nil && !e.WeekEnd.Equal(*weekEnd) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEntryStore) ListRecent(ctx context.Context, weeks int) ([]*repository.Entry, error) {
	return f.all(), nil
}

func (f *fakeEntryStore) ListWeeks(ctx context.Context) ([]repository.Week, error) {
	seen := map[time.Time]bool{}
	out := make([]repository.Week, 0)
	for _, e := range f.entries {
		if seen[e.WeekStart] {
			continue
		}
		seen[e.WeekStart] = true
		out = append(out, repository.Week{WeekStart: e.WeekStart, WeekEnd: e.WeekEnd})
	}
	return out, nil
}

func (f *fakeEntryStore) DeleteWeek(ctx context.Context, weekStart, weekEnd time.Time) error {
	for id, e := range f.entries {
		if e.WeekStart.Equal(weekStart) && e.WeekEnd.Equal(weekEnd) {
			delete(f.entries, id)
		}
	}
	return nil
}

func (f *fakeEntryStore) ListAll(ctx context.Context) ([]*repository.Entry, error) {
	return f.all(), nil
}

func (f *fakeEntryStore) all() []*repository.Entry {
	out := make([]*repository.Entry, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e)
	}
	return out
}

func amount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCreateDefaultsCategoryToRoomRental(t *testing.T) {
	store := newFakeEntryStore()
	svc := New(store)

	resp, err := svc.Create(context.Background(), transport.CreateEntryRequest{
		WeekStart: "2026-08-24",
		WeekEnd:   "2026-08-30",
		Therapist: "Dana",
		Location:  "FTL",
		Amount:    amount("40"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	stored, ok := store.entries[resp.ID]
	if !ok {
		t.Fatalf("entry was not stored")
	}
	if stored.Category != domain.CategoryRoomRental {
		t.Errorf("category = %q, want default %q", stored.Category, domain.CategoryRoomRental)
	}
	if got := stored.WeekStart.Format("2006-01-02"); got != "2026-08-24" {
		t.Errorf("week start = %s, want 2026-08-24", got)
	}
}

func TestCreateRejectsUnparseableWeekDate(t *testing.T) {
	svc := New(newFakeEntryStore())

	_, err := svc.Create(context.Background(), transport.CreateEntryRequest{
		WeekStart: "last monday",
		WeekEnd:   "2026-08-30",
		Therapist: "Dana",
		Amount:    amount("40"),
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("Create with bad week date: err = %v, want validation error", err)
	}
}

func TestCreateBulkSkipsBlankLines(t *testing.T) {
	store := newFakeEntryStore()
	svc := New(store)

	resp, err := svc.CreateBulk(context.Background(), transport.CreateBulkRequest{
		WeekStart: "2026-08-24",
		WeekEnd:   "2026-08-30",
		Entries: []transport.BulkEntry{
			{Therapist: "Dana", Location: "FTL", Amount: amount("40")},
			{Therapist: "", Amount: amount("40")},
			{Therapist: "Riley", Amount: amount("0")},
		},
	})
	if err != nil {
		t.Fatalf("CreateBulk: %v", err)
	}
	if resp.Count != 1 || len(resp.IDs) != 1 {
		t.Fatalf("bulk count = %d (%d ids), want 1", resp.Count, len(resp.IDs))
	}
	if len(store.entries) != 1 {
		t.Fatalf("stored %d entries, want 1", len(store.entries))
	}
}

func TestCreateBulkWithNoUsableLinesFails(t *testing.T) {
	svc := New(newFakeEntryStore())

	_, err := svc.CreateBulk(context.Background(), transport.CreateBulkRequest{
		WeekStart: "2026-08-24",
		WeekEnd:   "2026-08-30",
		Entries: []transport.BulkEntry{
			{Therapist: "", Amount: amount("40")},
			{Therapist: "Riley", Amount: amount("0")},
		},
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("CreateBulk with no usable lines: err = %v, want validation error", err)
	}
}

func TestUpdateMissingEntryIsNotFound(t *testing.T) {
	svc := New(newFakeEntryStore())

	therapist := "Dana"
	_, err := svc.Update(context.Background(), uuid.New(), transport.UpdateEntryRequest{Therapist: &therapist})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("Update missing: err = %v, want not found", err)
	}
}

func TestDeleteWeekRemovesAllEntriesForWeek(t *testing.T) {
	store := newFakeEntryStore()
	svc := New(store)

	if _, err := svc.CreateBulk(context.Background(), transport.CreateBulkRequest{
		WeekStart: "2026-08-24",
		WeekEnd:   "2026-08-30",
		Entries: []transport.BulkEntry{
			{Therapist: "Dana", Amount: amount("40")},
			{Therapist: "Riley", Amount: amount("80")},
		},
	}); err != nil {
		t.Fatalf("CreateBulk: %v", err)
	}

	resp, err := svc.DeleteWeek(context.Background(), transport.DeleteWeekRequest{
		WeekStart: "2026-08-24",
		WeekEnd:   "2026-08-30",
	})
	if err != nil {
		t.Fatalf("DeleteWeek: %v", err)
	}
	if !resp.OK {
		t.Fatalf("DeleteWeek response = %+v, want ok", resp)
	}
	if len(store.entries) != 0 {
		t.Fatalf("%d entries remain after week delete", len(store.entries))
	}
}

func TestDashboardWeeklyAggregatesStoredEntries(t *testing.T) {
	store := newFakeEntryStore()
	svc := New(store)

	if _, err := svc.CreateBulk(context.Background(), transport.CreateBulkRequest{
		WeekStart: "2026-08-24",
		WeekEnd:   "2026-08-30",
		Entries: []transport.BulkEntry{
			{Therapist: "Dana", Location: domain.LocFTL, Amount: amount("40")},
			{Therapist: "Riley", Location: domain.LocCS, Amount: amount("80")},
			{Therapist: "Sam", Amount: amount("100"), Category: domain.CategoryTesting},
		},
	}); err != nil {
		t.Fatalf("CreateBulk: %v", err)
	}

	weekly, therapists, err := svc.DashboardWeekly(context.Background())
	if err != nil {
		t.Fatalf("DashboardWeekly: %v", err)
	}
	if len(weekly) != 1 {
		t.Fatalf("got %d weeks, want 1", len(weekly))
	}
	w := weekly[0]
	if w.Week != "2026-08-24" {
		t.Errorf("week label = %q, want 2026-08-24", w.Week)
	}
	if w.Total != 220 || w.FTL != 40 || w.CS != 80 || w.Testing != 100 {
		t.Errorf("week totals = %+v, want total 220 ftl 40 cs 80 testing 100", w)
	}
	if len(therapists) != 3 {
		t.Fatalf("got %d therapist totals, want 3", len(therapists))
	}
}
