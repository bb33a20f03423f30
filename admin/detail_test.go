package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"okuyorum-admin/api"
	"okuyorum-admin/models"
	"okuyorum-admin/session"
)

func loadedDetail(t *testing.T, backend *fakeDonations, id string) (*Detail[models.Donation], *recorder, *memJournal) {
	t.Helper()
	fb, rec := newFeedback()
	journal := &memJournal{}
	d := NewDonationDetail(backend, fb, journal)
	if err := d.Load(context.Background(), id); err != nil {
		t.Fatalf("load %s: %v", id, err)
	}
	if d.State() != StateReady {
		t.Fatalf("state = %v", d.State())
	}
	return d, rec, journal
}

func TestDetailRejectsMalformedIDWithoutFetching(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-3", "", "1.5"} {
		backend := newFakeDonations(donation(1, "PENDING", "A"))
		fb, rec := newFeedback()
		d := NewDonationDetail(backend, fb, nil)

		err := d.Load(context.Background(), raw)
		var vErr *ValidationError
		if !errors.As(err, &vErr) || vErr.Message != "Geçersiz bağış ID'si" {
			t.Fatalf("Load(%q) = %v", raw, err)
		}
		if backend.count("get") != 0 {
			t.Fatalf("Load(%q) fetched", raw)
		}
		if d.State() != StateError {
			t.Fatalf("Load(%q) state = %v", raw, d.State())
		}
		if notes := rec.notifications(); len(notes) != 1 || notes[0].Message != "Geçersiz bağış ID'si" {
			t.Fatalf("Load(%q) notifications = %+v", raw, notes)
		}
		if d.Enabled(ActionStatus) || d.Enabled(ActionDelete) {
			t.Fatalf("actions enabled on error state")
		}
	}
}

func TestDetailLoadNotFound(t *testing.T) {
	backend := newFakeDonations()
	fb, rec := newFeedback()
	d := NewDonationDetail(backend, fb, nil)

	err := d.Load(context.Background(), "42")
	if !errors.Is(err, api.ErrNotFound) {
		t.Fatalf("Load(42) = %v, want api.ErrNotFound", err)
	}
	if d.State() != StateError || d.Err() == nil {
		t.Fatalf("after 404: state = %v err = %v, want error state holding the 404", d.State(), d.Err())
	}
	if notes := rec.notifications(); len(notes) != 1 || notes[0].Message != "Kayıt bulunamadı." {
		t.Fatalf("notifications = %+v, want one \"Kayıt bulunamadı.\"", notes)
	}
	if err := d.SubmitStatus(context.Background(), "APPROVED", ""); !errors.Is(err, ErrNotReady) {
		t.Fatalf("submit after failed load = %v, want ErrNotReady", err)
	}
	if backend.count("status") != 0 {
		t.Fatalf("status update sent for a record that never loaded")
	}
}

func TestSubmitStatusRoundTrip(t *testing.T) {
	backend := newFakeDonations(donation(1, "PENDING", "Saatleri Ayarlama Enstitüsü"))
	d, rec, journal := loadedDetail(t, backend, "1")

	if f := d.Form(); f.Status != "PENDING" {
		t.Fatalf("form not seeded: %+v", f)
	}
	if err := d.SubmitStatus(context.Background(), "APPROVED", "Uygun"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	item := d.Item()
	if item.Status != models.DonationApproved || item.StatusNote != "Uygun" {
		t.Fatalf("item = %+v", item)
	}
	// Side effects of the backend show up because the record is re-fetched.
	if item.HandlerName != "sistem" {
		t.Fatalf("re-fetch missing, handler = %q", item.HandlerName)
	}
	if backend.count("get") != 2 {
		t.Fatalf("get calls = %d", backend.count("get"))
	}
	if d.ActionState(ActionStatus) != ActionEditing || !d.Enabled(ActionStatus) {
		t.Fatalf("status control not re-enabled")
	}
	notes := rec.notifications()
	if len(notes) != 1 || notes[0].Kind != KindSuccess {
		t.Fatalf("notifications = %+v", notes)
	}
	if len(journal.entries) != 1 || journal.entries[0].Outcome != session.OutcomeSuccess {
		t.Fatalf("journal = %+v", journal.entries)
	}
}

func TestSubmitStatusAnyToAny(t *testing.T) {
	backend := newFakeDonations(donation(1, "COMPLETED", "A"))
	d, _, _ := loadedDetail(t, backend, "1")
	for _, s := range []string{"PENDING", "CANCELLED", "IN_TRANSIT"} {
		if err := d.SubmitStatus(context.Background(), s, ""); err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		if string(d.Item().Status) != s {
			t.Fatalf("status = %s, want %s", d.Item().Status, s)
		}
	}
}

func TestSubmitStatusRejectsUnknownStatus(t *testing.T) {
	backend := newFakeDonations(donation(1, "PENDING", "A"))
	d, rec, _ := loadedDetail(t, backend, "1")

	var vErr *ValidationError
	if err := d.SubmitStatus(context.Background(), "SHIPPED", ""); !errors.As(err, &vErr) {
		t.Fatalf("err = %v", err)
	}
	if backend.count("status") != 0 {
		t.Fatalf("invalid status reached backend")
	}
	if len(rec.notifications()) != 1 {
		t.Fatalf("notifications = %+v", rec.notifications())
	}
}

func TestSubmitStatusIsIdempotentWhileSubmitting(t *testing.T) {
	backend := newFakeDonations(donation(1, "PENDING", "A"))
	d, rec, _ := loadedDetail(t, backend, "1")
	backend.block = make(chan struct{})

	done := make(chan error, 1)
	go func() { done <- d.SubmitStatus(context.Background(), "APPROVED", "") }()

	deadline := time.Now().Add(2 * time.Second)
	for d.ActionState(ActionStatus) != ActionSubmitting {
		if time.Now().After(deadline) {
			t.Fatal("first submit never started")
		}
		time.Sleep(time.Millisecond)
	}
	if d.Enabled(ActionStatus) {
		t.Fatal("control enabled while submitting")
	}
	if err := d.SubmitStatus(context.Background(), "APPROVED", ""); !errors.Is(err, ErrBusy) {
		t.Fatalf("second submit = %v, want ErrBusy", err)
	}
	close(backend.block)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if backend.count("status") != 1 {
		t.Fatalf("status calls = %d", backend.count("status"))
	}
	if len(rec.notifications()) != 1 {
		t.Fatalf("notifications = %+v", rec.notifications())
	}
}

func TestSubmitStatusFailureKeepsForm(t *testing.T) {
	backend := newFakeDonations(donation(1, "PENDING", "A"))
	d, rec, journal := loadedDetail(t, backend, "1")
	backend.statusErr = &api.Error{StatusCode: 500, Message: "Veritabanı hatası"}

	if err := d.SubmitStatus(context.Background(), "REJECTED", "Eksik bilgi"); err == nil {
		t.Fatal("expected error")
	}
	if f := d.Form(); f.Status != "REJECTED" || f.Note != "Eksik bilgi" {
		t.Fatalf("form reset after failure: %+v", f)
	}
	if d.Item().Status != models.DonationPending {
		t.Fatalf("item changed after failure")
	}
	if d.ActionState(ActionStatus) != ActionFailed || !d.Enabled(ActionStatus) {
		t.Fatalf("failed action must stay usable")
	}
	notes := rec.notifications()
	if len(notes) != 1 || notes[0].Message != "Veritabanı hatası" {
		t.Fatalf("notifications = %+v", notes)
	}
	if len(journal.entries) != 1 || journal.entries[0].Outcome != session.OutcomeFailed {
		t.Fatalf("journal = %+v", journal.entries)
	}
}

func TestUnauthorizedSchedulesLoginRedirect(t *testing.T) {
	backend := newFakeDonations(donation(1, "PENDING", "A"))
	d, rec, _ := loadedDetail(t, backend, "1")
	backend.statusErr = &api.Error{StatusCode: 401}

	_ = d.SubmitStatus(context.Background(), "APPROVED", "")
	notes := rec.notifications()
	if len(notes) != 1 || notes[0].Message != "Bu işlem için giriş yapmalısınız." {
		t.Fatalf("notifications = %+v", notes)
	}
	if routes := rec.navigations(); len(routes) != 1 || routes[0] != RouteLogin {
		t.Fatalf("navigations = %v", routes)
	}
}

func TestResyncFailureMarksStale(t *testing.T) {
	backend := newFakeDonations(donation(1, "PENDING", "A"))
	d, rec, _ := loadedDetail(t, backend, "1")
	backend.getErr = &api.Error{StatusCode: 503}

	if err := d.SubmitStatus(context.Background(), "APPROVED", ""); err != nil {
		t.Fatalf("mutation succeeded but got %v", err)
	}
	if !d.Stale() || d.State() != StateReady {
		t.Fatalf("stale = %v state = %v", d.Stale(), d.State())
	}
	if notes := rec.notifications(); len(notes) != 1 || notes[0].Kind != KindSuccess {
		t.Fatalf("notifications = %+v", notes)
	}
}

func TestDeleteSuccessNavigatesToList(t *testing.T) {
	backend := newFakeDonations(donation(5, "PENDING", "A"))
	d, rec, journal := loadedDetail(t, backend, "5")

	if err := d.Delete(context.Background(), answer(true)); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if routes := rec.navigations(); len(routes) != 1 || routes[0] != RouteDonations {
		t.Fatalf("navigations = %v", routes)
	}
	if backend.count("delete") != 1 || d.State() != StateIdle {
		t.Fatalf("delete calls = %d state = %v", backend.count("delete"), d.State())
	}
	if notes := rec.notifications(); len(notes) != 1 || notes[0].Kind != KindSuccess {
		t.Fatalf("notifications = %+v", notes)
	}
	if len(journal.entries) != 1 || journal.entries[0].Action != string(ActionDelete) {
		t.Fatalf("journal = %+v", journal.entries)
	}
}

func TestDeleteFailureStaysPut(t *testing.T) {
	backend := newFakeDonations(donation(5, "PENDING", "A"))
	d, rec, _ := loadedDetail(t, backend, "5")
	backend.deleteErr = &api.Error{StatusCode: 500}

	if err := d.Delete(context.Background(), answer(true)); err == nil {
		t.Fatal("expected error")
	}
	if len(rec.navigations()) != 0 {
		t.Fatalf("navigated after failed delete: %v", rec.navigations())
	}
	if !d.Enabled(ActionDelete) || d.State() != StateReady {
		t.Fatalf("delete control not re-enabled")
	}
	notes := rec.notifications()
	if len(notes) != 1 || notes[0].Kind != KindDestructive {
		t.Fatalf("notifications = %+v", notes)
	}
}

func TestDeleteDeclined(t *testing.T) {
	backend := newFakeDonations(donation(5, "PENDING", "A"))
	d, rec, _ := loadedDetail(t, backend, "5")

	if err := d.Delete(context.Background(), answer(false)); !errors.Is(err, ErrCancelled) {
		t.Fatalf("err = %v", err)
	}
	if backend.count("delete") != 0 || len(rec.notifications()) != 0 || len(rec.navigations()) != 0 {
		t.Fatalf("declined delete had effects")
	}
}

func TestDetailWithoutTrackingHooks(t *testing.T) {
	fb, _ := newFeedback()
	d := NewDetail(DetailConfig[models.DonationRequest]{Resource: "request"}, fb, nil)
	if err := d.SubmitTracking(context.Background(), TrackingInput{HandlerName: "x"}); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v", err)
	}
	if err := d.Delete(context.Background(), answer(true)); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v", err)
	}
}

func TestSubmitEditResyncsAndJournals(t *testing.T) {
	backend := newFakeDonations(donation(1, "APPROVED", "Yaban"))
	d, rec, journal := loadedDetail(t, backend, "1")

	err := d.SubmitEdit(context.Background(), func(item *models.Donation) {
		item.BookTitle, item.Quantity = "Yaban (2. baskı)", 3
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if backend.count("update") != 1 || backend.count("get") != 2 {
		t.Fatalf("calls = %v", backend.calls)
	}
	item := d.Item()
	if item.BookTitle != "Yaban (2. baskı)" || item.Quantity != 3 || item.Status != models.DonationApproved {
		t.Fatalf("item = %+v", item)
	}
	if !d.Enabled(ActionEdit) {
		t.Fatalf("edit control not re-enabled")
	}
	if notes := rec.notifications(); len(notes) != 1 || notes[0].Kind != KindSuccess {
		t.Fatalf("notifications = %+v", notes)
	}
	if len(journal.entries) != 1 || journal.entries[0].Action != "edit" || journal.entries[0].Outcome != session.OutcomeSuccess {
		t.Fatalf("journal = %+v", journal.entries)
	}
}

func TestSubmitEditValidatesLocally(t *testing.T) {
	backend := newFakeDonations(donation(1, "PENDING", "Yaban"))
	d, rec, journal := loadedDetail(t, backend, "1")

	err := d.SubmitEdit(context.Background(), func(item *models.Donation) { item.Quantity = 0 })
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "quantity" {
		t.Fatalf("err = %v", err)
	}
	if backend.count("update") != 0 {
		t.Fatalf("invalid edit reached backend")
	}
	if d.Item().Quantity != 1 {
		t.Fatalf("loaded record changed by a rejected edit: %+v", d.Item())
	}
	if len(rec.notifications()) != 1 || len(journal.entries) != 0 {
		t.Fatalf("notifications = %+v journal = %+v", rec.notifications(), journal.entries)
	}
}

func TestSubmitEditFailureKeepsRecord(t *testing.T) {
	backend := newFakeDonations(donation(1, "PENDING", "Yaban"))
	d, rec, journal := loadedDetail(t, backend, "1")
	backend.updateErr = &api.Error{StatusCode: 500, Message: "boom"}

	err := d.SubmitEdit(context.Background(), func(item *models.Donation) { item.BookTitle = "Başka" })
	if err == nil {
		t.Fatal("expected failure")
	}
	if d.Item().BookTitle != "Yaban" || backend.count("get") != 1 {
		t.Fatalf("item = %+v, gets = %d", d.Item(), backend.count("get"))
	}
	if d.ActionState(ActionEdit) != ActionFailed || !d.Enabled(ActionEdit) {
		t.Fatalf("edit control state = %v", d.ActionState(ActionEdit))
	}
	if notes := rec.notifications(); len(notes) != 1 || notes[0].Kind != KindDestructive {
		t.Fatalf("notifications = %+v", notes)
	}
	if len(journal.entries) != 1 || journal.entries[0].Outcome != session.OutcomeFailed {
		t.Fatalf("journal = %+v", journal.entries)
	}
}

func TestCreateDonationJournalsOutcome(t *testing.T) {
	backend := newFakeDonations()
	fb, rec := newFeedback()
	journal := &memJournal{}

	id, err := CreateDonation(context.Background(), backend, fb, journal, models.Donation{
		BookTitle: "Tutunamayanlar", Quantity: 2, DonationType: models.DonationForLibraries, InstitutionName: "Beyazıt Devlet Kütüphanesi",
	})
	if err != nil || id == 0 {
		t.Fatalf("create = %d, %v", id, err)
	}
	if len(journal.entries) != 1 || journal.entries[0].ResourceID != id || journal.entries[0].Outcome != session.OutcomeSuccess {
		t.Fatalf("journal = %+v", journal.entries)
	}

	backend.createErr = &api.Error{StatusCode: 500}
	if _, err := CreateDonation(context.Background(), backend, fb, journal, models.Donation{
		BookTitle: "Tutunamayanlar", Quantity: 1, DonationType: models.DonationForIndividual,
	}); err == nil {
		t.Fatal("expected failure")
	}
	if len(journal.entries) != 2 || journal.entries[1].Outcome != session.OutcomeFailed || journal.entries[1].Action != "create" {
		t.Fatalf("journal = %+v", journal.entries)
	}

	// A library donation without an institution never leaves the machine.
	if _, err := CreateDonation(context.Background(), backend, fb, journal, models.Donation{
		BookTitle: "Tutunamayanlar", Quantity: 1, DonationType: models.DonationForLibraries,
	}); err == nil {
		t.Fatal("expected validation error")
	}
	if backend.count("create") != 2 || len(journal.entries) != 2 {
		t.Fatalf("creates = %d, journal = %+v", backend.count("create"), journal.entries)
	}
	if notes := rec.notifications(); len(notes) != 3 {
		t.Fatalf("notifications = %+v", notes)
	}
}
