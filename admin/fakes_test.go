package admin

import (
	"context"
	"sync"
	"time"

	"okuyorum-admin/api"
	"okuyorum-admin/models"
	"okuyorum-admin/session"
)

type recorder struct {
	mu     sync.Mutex
	notes  []Notification
	routes []string
}

func (r *recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

func (r *recorder) Navigate(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

func (r *recorder) notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.notes...)
}

func (r *recorder) navigations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.routes...)
}

// newFeedback returns a Feedback whose delayed redirects run immediately.
func newFeedback() (*Feedback, *recorder) {
	rec := &recorder{}
	fb := NewFeedback(rec, rec, nil)
	fb.schedule = func(_ time.Duration, fn func()) { fn() }
	return fb, rec
}

type answer bool

func (a answer) Confirm(context.Context, string) bool { return bool(a) }

type memJournal struct {
	entries []session.Entry
}

func (m *memJournal) Record(e session.Entry) error {
	m.entries = append(m.entries, e)
	return nil
}

// fakeDonations is an in-memory backend. Hooks override individual calls.
type fakeDonations struct {
	mu        sync.Mutex
	donations map[int64]models.Donation
	calls     []string

	statusErr   error
	trackingErr []error // consumed one per call
	handlerErr  error
	updateErr   error
	createErr   error
	deleteErr   error
	getErr      error
	block       chan struct{} // when set, status updates wait on it
}

func newFakeDonations(ds ...models.Donation) *fakeDonations {
	f := &fakeDonations{donations: map[int64]models.Donation{}}
	for _, d := range ds {
		if id, ok := d.DonationID(); ok {
			f.donations[id] = d
		}
	}
	return f
}

func (f *fakeDonations) log(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeDonations) count(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == prefix {
			n++
		}
	}
	return n
}

func (f *fakeDonations) GetAllDonations(ctx context.Context) (*api.Response[[]models.Donation], error) {
	f.log("list")
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Donation
	for _, d := range f.donations {
		out = append(out, d)
	}
	return &api.Response[[]models.Donation]{Data: out}, nil
}

func (f *fakeDonations) GetDonationByID(ctx context.Context, id int64) (*api.Response[models.Donation], error) {
	f.log("get")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	d, ok := f.donations[id]
	if !ok {
		return nil, &api.Error{StatusCode: 404}
	}
	return &api.Response[models.Donation]{Data: d}, nil
}

func (f *fakeDonations) UpdateDonationStatus(ctx context.Context, id int64, status models.DonationStatus, note string) (*api.Response[models.Donation], error) {
	f.log("status")
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	d := f.donations[id]
	d.Status, d.StatusNote = status, note
	// The backend stamps a handler when a donation gets approved.
	if status == models.DonationApproved && d.HandlerName == "" {
		d.HandlerName = "sistem"
	}
	f.donations[id] = d
	return &api.Response[models.Donation]{Data: d}, nil
}

func (f *fakeDonations) UpdateTrackingInfo(ctx context.Context, id int64, info models.TrackingInfo) (*api.Response[models.Donation], error) {
	f.log("tracking")
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.trackingErr) > 0 {
		err := f.trackingErr[0]
		f.trackingErr = f.trackingErr[1:]
		if err != nil {
			return nil, err
		}
	}
	d := f.donations[id]
	d.TrackingCode, d.DeliveryMethod, d.EstimatedDeliveryDate = info.TrackingCode, info.DeliveryMethod, info.EstimatedDeliveryDate
	f.donations[id] = d
	return &api.Response[models.Donation]{Data: d}, nil
}

func (f *fakeDonations) UpdateHandlerName(ctx context.Context, id int64, name string) (*api.Response[models.Donation], error) {
	f.log("handler")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.handlerErr != nil {
		return nil, f.handlerErr
	}
	d := f.donations[id]
	d.HandlerName = name
	f.donations[id] = d
	return &api.Response[models.Donation]{Data: d}, nil
}

func (f *fakeDonations) UpdateDonation(ctx context.Context, id int64, d models.Donation) (*api.Response[models.Donation], error) {
	f.log("update")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	// Edits never move the status; the backend keeps its own copy.
	d.Status = f.donations[id].Status
	d.ID = &id
	f.donations[id] = d
	return &api.Response[models.Donation]{Data: d}, nil
}

func (f *fakeDonations) CreateDonation(ctx context.Context, d models.Donation) (*api.Response[models.Donation], error) {
	f.log("create")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	id := int64(len(f.donations) + 100)
	d.ID, d.Status = &id, models.DonationPending
	f.donations[id] = d
	return &api.Response[models.Donation]{Data: d}, nil
}

func (f *fakeDonations) DeleteDonation(ctx context.Context, id int64) error {
	f.log("delete")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.donations, id)
	return nil
}

func donation(id int64, status models.DonationStatus, title string) models.Donation {
	return models.Donation{ID: &id, Status: status, BookTitle: title, Quantity: 1, DonationType: models.DonationForIndividual}
}
