package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"okuyorum-admin/api"
	"okuyorum-admin/models"
	"okuyorum-admin/session"
)

const (
	RouteDashboard   = "/admin"
	RouteDonations   = "/admin/donations"
	RouteNewDonation = "/admin/donations/new"
	RouteRequests    = "/admin/requests"
	RouteEvents      = "/admin/events"
	RouteUsers       = "/admin/users"
)

func DonationRoute(id int64) string { return fmt.Sprintf("%s/%d", RouteDonations, id) }
func RequestRoute(id int64) string  { return fmt.Sprintf("%s/%d", RouteRequests, id) }
func EventRoute(id int64) string    { return fmt.Sprintf("%s/%d", RouteEvents, id) }
func RegistrationsRoute(eventID int64) string {
	return fmt.Sprintf("%s/%d/registrations", RouteEvents, eventID)
}

// DonationAPI is the part of services.DonationService the screens use.
type DonationAPI interface {
	GetAllDonations(ctx context.Context) (*api.Response[[]models.Donation], error)
	GetDonationByID(ctx context.Context, id int64) (*api.Response[models.Donation], error)
	UpdateDonationStatus(ctx context.Context, id int64, status models.DonationStatus, note string) (*api.Response[models.Donation], error)
	UpdateTrackingInfo(ctx context.Context, id int64, info models.TrackingInfo) (*api.Response[models.Donation], error)
	UpdateHandlerName(ctx context.Context, id int64, name string) (*api.Response[models.Donation], error)
	UpdateDonation(ctx context.Context, id int64, d models.Donation) (*api.Response[models.Donation], error)
	DeleteDonation(ctx context.Context, id int64) error
}

// DonationCreator is the part of services.DonationService the new-donation
// form uses.
type DonationCreator interface {
	CreateDonation(ctx context.Context, d models.Donation) (*api.Response[models.Donation], error)
}

// RequestAPI is the part of services.RequestService the screens use.
type RequestAPI interface {
	GetAllRequests(ctx context.Context) (*api.Response[[]models.DonationRequest], error)
	GetRequestByID(ctx context.Context, id int64) (*api.Response[models.DonationRequest], error)
	UpdateRequestStatus(ctx context.Context, id int64, status models.RequestStatus) (*api.Response[models.DonationRequest], error)
	DeleteRequest(ctx context.Context, id int64) error
}

// RegistrationAPI is the part of services.RegistrationService the screens use.
type RegistrationAPI interface {
	GetEventRegistrations(ctx context.Context, eventID int64) (*api.Response[[]models.EventRegistration], error)
	GetRegistrationByID(ctx context.Context, id int64) (*api.Response[models.EventRegistration], error)
	UpdateAttendanceStatus(ctx context.Context, id int64, status models.AttendanceStatus, notes string) (*api.Response[models.EventRegistration], error)
}

// unwrap drops the envelope for callers that only want the data.
func unwrap[T any](resp *api.Response[T], err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	return resp.Data, nil
}

func ignoreData[T any](_ *api.Response[T], err error) error { return err }

// ---------------------------------------------------------------------------
// Donations
// ---------------------------------------------------------------------------

var DonationSchema = Schema[models.Donation]{
	Text: func(d models.Donation) []string {
		return []string{d.BookTitle, d.Author, d.Genre, d.InstitutionName, d.RecipientName, d.TrackingCode, d.HandlerName}
	},
	Status:      func(d models.Donation) string { return string(d.Status) },
	Type:        func(d models.Donation) string { return string(d.DonationType) },
	Date:        func(d models.Donation) time.Time { return d.CreatedAt.Time },
	Quantity:    func(d models.Donation) int { return d.Quantity },
	ID:          func(d models.Donation) (int64, bool) { return d.DonationID() },
	ParseStatus: statusParser(models.ParseDonationStatus),
	Sorts: map[string]func(a, b models.Donation) int {
		"createdAt": func(a, b models.Donation) int { return CompareTimes(a.CreatedAt.Time, b.CreatedAt.Time) },
		"bookTitle": func(a, b models.Donation) int { return CompareStrings(a.BookTitle, b.BookTitle) },
		"quantity":  func(a, b models.Donation) int { return CompareInts(a.Quantity, b.Quantity) },
		"status":    func(a, b models.Donation) int { return CompareStrings(string(a.Status), string(b.Status)) },
	},
}

func NewDonationList(svc DonationAPI, fb *Feedback) *ListView[models.Donation] {
	load := func(ctx context.Context) ([]models.Donation, error) {
		return unwrap(svc.GetAllDonations(ctx))
	}
	return NewListView("donations", DonationSchema, load, fb)
}

func NewDonationDetail(svc DonationAPI, fb *Feedback, journal Journal) *Detail[models.Donation] {
	return NewDetail(DetailConfig[models.Donation]{
		Resource:  "donation",
		InvalidID: "Geçersiz bağış ID'si",
		ListRoute: RouteDonations,
		Get: func(ctx context.Context, id int64) (models.Donation, error) {
			return unwrap(svc.GetDonationByID(ctx, id))
		},
		Status:      func(d models.Donation) string { return string(d.Status) },
		Note:        func(d models.Donation) string { return d.StatusNote },
		ValidStatus: func(s string) bool { return models.DonationStatus(s).Valid() },
		UpdateStatus: func(ctx context.Context, id int64, status, note string) error {
			return ignoreData(svc.UpdateDonationStatus(ctx, id, models.DonationStatus(status), note))
		},
		Validate: ValidateDonation,
		Update: func(ctx context.Context, id int64, d models.Donation) error {
			return ignoreData(svc.UpdateDonation(ctx, id, d))
		},
		Delete: svc.DeleteDonation,
		Tracking: &TrackingHooks[models.Donation]{
			Current: func(d models.Donation) (models.TrackingInfo, string) { return d.Tracking(), d.HandlerName },
			UpdateTracking: func(ctx context.Context, id int64, info models.TrackingInfo) error {
				return ignoreData(svc.UpdateTrackingInfo(ctx, id, info))
			},
			UpdateHandler: func(ctx context.Context, id int64, name string) error {
				return ignoreData(svc.UpdateHandlerName(ctx, id, name))
			},
		},
	}, fb, journal)
}

// ValidateDonation checks what the backend would reject anyway, so a bad
// form never leaves the machine.
func ValidateDonation(d models.Donation) error {
	switch {
	case strings.TrimSpace(d.BookTitle) == "":
		return &ValidationError{Field: "bookTitle", Message: "Kitap adı zorunludur."}
	case d.Quantity <= 0:
		return &ValidationError{Field: "quantity", Message: "Adet en az 1 olmalıdır."}
	case !d.DonationType.Valid():
		return &ValidationError{Field: "donationType", Message: "Geçersiz bağış türü: " + string(d.DonationType)}
	case d.DonationType != models.DonationForIndividual && strings.TrimSpace(d.InstitutionName) == "":
		return &ValidationError{Field: "institutionName", Message: "Kurum adı zorunludur."}
	}
	return nil
}

// CreateDonation validates d, sends it and journals the outcome. It returns
// the id the backend assigned.
func CreateDonation(ctx context.Context, svc DonationCreator, fb *Feedback, journal Journal, d models.Donation) (int64, error) {
	if err := ValidateDonation(d); err != nil {
		fb.Invalid(err.Error())
		return 0, err
	}
	resp, err := svc.CreateDonation(ctx, d)
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}
	entry := session.Entry{Resource: "donation", Action: string(ActionCreate), Detail: d.BookTitle}
	if err != nil {
		entry.Outcome, entry.Detail = session.OutcomeFailed, err.Error()
		writeJournal(journal, fb, entry)
		fb.Failure("Bağış oluşturulamadı", err)
		return 0, err
	}
	id, _ := resp.Data.DonationID()
	entry.ResourceID, entry.Outcome = id, session.OutcomeSuccess
	writeJournal(journal, fb, entry)
	fb.Success("Bağış oluşturuldu", fmt.Sprintf("#%d kaydedildi.", id))
	return id, nil
}

// ---------------------------------------------------------------------------
// Donation requests
// ---------------------------------------------------------------------------

var RequestSchema = Schema[models.DonationRequest]{
	Text: func(r models.DonationRequest) []string {
		return []string{r.BookTitle, r.Author, r.Genre, r.RequesterName, r.InstitutionName, r.Address}
	},
	Status:      func(r models.DonationRequest) string { return string(r.Status) },
	Type:        func(r models.DonationRequest) string { return string(r.Type) },
	Date:        func(r models.DonationRequest) time.Time { return r.CreatedAt.Time },
	Quantity:    func(r models.DonationRequest) int { return r.Quantity },
	ID:          func(r models.DonationRequest) (int64, bool) { return r.ID, r.ID > 0 },
	ParseStatus: statusParser(models.ParseRequestStatus),
	Sorts: map[string]func(a, b models.DonationRequest) int {
		"createdAt": func(a, b models.DonationRequest) int { return CompareTimes(a.CreatedAt.Time, b.CreatedAt.Time) },
		"bookTitle": func(a, b models.DonationRequest) int { return CompareStrings(a.BookTitle, b.BookTitle) },
		"quantity":  func(a, b models.DonationRequest) int { return CompareInts(a.Quantity, b.Quantity) },
	},
}

func NewRequestList(svc RequestAPI, fb *Feedback) *ListView[models.DonationRequest] {
	load := func(ctx context.Context) ([]models.DonationRequest, error) {
		return unwrap(svc.GetAllRequests(ctx))
	}
	return NewListView("requests", RequestSchema, load, fb)
}

func NewRequestDetail(svc RequestAPI, fb *Feedback, journal Journal) *Detail[models.DonationRequest] {
	return NewDetail(DetailConfig[models.DonationRequest]{
		Resource:  "request",
		InvalidID: "Geçersiz talep ID'si",
		ListRoute: RouteRequests,
		Get: func(ctx context.Context, id int64) (models.DonationRequest, error) {
			return unwrap(svc.GetRequestByID(ctx, id))
		},
		Status:      func(r models.DonationRequest) string { return string(r.Status) },
		ValidStatus: func(s string) bool { return models.RequestStatus(s).Valid() },
		UpdateStatus: func(ctx context.Context, id int64, status, _ string) error {
			return ignoreData(svc.UpdateRequestStatus(ctx, id, models.RequestStatus(status)))
		},
		Delete: svc.DeleteRequest,
	}, fb, journal)
}

// ---------------------------------------------------------------------------
// Event registrations
// ---------------------------------------------------------------------------

var RegistrationSchema = Schema[models.EventRegistration]{
	Text: func(r models.EventRegistration) []string {
		return []string{r.Username, r.AttendanceNotes, r.CheckedInBy}
	},
	Status:      func(r models.EventRegistration) string { return string(r.AttendanceStatus) },
	Date:        func(r models.EventRegistration) time.Time { return r.RegisteredAt.Time },
	ID:          func(r models.EventRegistration) (int64, bool) { return r.ID, r.ID > 0 },
	ParseStatus: statusParser(models.ParseAttendanceStatus),
	Sorts: map[string]func(a, b models.EventRegistration) int {
		"username":     func(a, b models.EventRegistration) int { return CompareStrings(a.Username, b.Username) },
		"registeredAt": func(a, b models.EventRegistration) int { return CompareTimes(a.RegisteredAt.Time, b.RegisteredAt.Time) },
	},
}

func NewRegistrationList(svc RegistrationAPI, eventID int64, fb *Feedback) *ListView[models.EventRegistration] {
	load := func(ctx context.Context) ([]models.EventRegistration, error) {
		return unwrap(svc.GetEventRegistrations(ctx, eventID))
	}
	return NewListView(fmt.Sprintf("registrations:%d", eventID), RegistrationSchema, load, fb)
}

// NewRegistrationDetail edits attendance. Registrations cannot be deleted
// from the admin screens.
func NewRegistrationDetail(svc RegistrationAPI, eventID int64, fb *Feedback, journal Journal) *Detail[models.EventRegistration] {
	return NewDetail(DetailConfig[models.EventRegistration]{
		Resource:  "registration",
		InvalidID: "Geçersiz kayıt ID'si",
		ListRoute: RegistrationsRoute(eventID),
		Get: func(ctx context.Context, id int64) (models.EventRegistration, error) {
			return unwrap(svc.GetRegistrationByID(ctx, id))
		},
		Status:      func(r models.EventRegistration) string { return string(r.AttendanceStatus) },
		Note:        func(r models.EventRegistration) string { return r.AttendanceNotes },
		ValidStatus: func(s string) bool { return models.AttendanceStatus(s).Valid() },
		UpdateStatus: func(ctx context.Context, id int64, status, note string) error {
			return ignoreData(svc.UpdateAttendanceStatus(ctx, id, models.AttendanceStatus(status), note))
		},
	}, fb, journal)
}

// ---------------------------------------------------------------------------
// Read-only lists
// ---------------------------------------------------------------------------

var UserSchema = Schema[models.User]{
	Text:   func(u models.User) []string { return []string{u.Username, u.Email} },
	Status: func(u models.User) string { return u.Role },
	Date:   func(u models.User) time.Time { return u.Created.Time },
	ID:     func(u models.User) (int64, bool) { return u.ID, u.ID > 0 },
	Sorts: map[string]func(a, b models.User) int {
		"username":  func(a, b models.User) int { return CompareStrings(a.Username, b.Username) },
		"createdAt": func(a, b models.User) int { return CompareTimes(a.Created.Time, b.Created.Time) },
	},
}

var EventSchema = Schema[models.KiraathaneEvent]{
	Text:     func(e models.KiraathaneEvent) []string { return []string{e.Title, e.Description} },
	Type:     func(e models.KiraathaneEvent) string { return string(e.EventType) },
	Date:     func(e models.KiraathaneEvent) time.Time { return e.EventDate.Time },
	Quantity: func(e models.KiraathaneEvent) int { return e.Capacity },
	ID:       func(e models.KiraathaneEvent) (int64, bool) { return e.ID, e.ID > 0 },
	Sorts: map[string]func(a, b models.KiraathaneEvent) int {
		"eventDate": func(a, b models.KiraathaneEvent) int { return CompareTimes(a.EventDate.Time, b.EventDate.Time) },
		"title":     func(a, b models.KiraathaneEvent) int { return CompareStrings(a.Title, b.Title) },
		"seatsLeft": func(a, b models.KiraathaneEvent) int { return CompareInts(a.SeatsLeft(), b.SeatsLeft()) },
	},
}
