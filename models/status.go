package models

import (
	"fmt"
	"strings"
)

// StatusMeta is how every admin view renders a status value. All views read
// it from the tables below instead of keeping their own label maps.
type StatusMeta struct {
	Label string
	Color string
	Icon  string
}

var unknownMeta = StatusMeta{Label: "Bilinmiyor", Color: "gray", Icon: "❔"}

// DonationStatus is the fulfilment stage of a Donation.
//
// An admin may move a donation from any status to any other; only the
// target has to be a known status (Valid).
type DonationStatus string

const (
	DonationPending             DonationStatus = "PENDING"
	DonationApproved            DonationStatus = "APPROVED"
	DonationPreparing           DonationStatus = "PREPARING"
	DonationReadyForPickup      DonationStatus = "READY_FOR_PICKUP"
	DonationInTransit           DonationStatus = "IN_TRANSIT"
	DonationDelivered           DonationStatus = "DELIVERED"
	DonationReceivedByRecipient DonationStatus = "RECEIVED_BY_RECIPIENT"
	DonationCompleted           DonationStatus = "COMPLETED"
	DonationRejected            DonationStatus = "REJECTED"
	DonationCancelled           DonationStatus = "CANCELLED"
)

// DonationStatuses lists every status in pipeline order.
var DonationStatuses = []DonationStatus{
	DonationPending, DonationApproved, DonationPreparing, DonationReadyForPickup,
	DonationInTransit, DonationDelivered, DonationReceivedByRecipient,
	DonationCompleted, DonationRejected, DonationCancelled,
}

var donationStatusMeta = map[DonationStatus]StatusMeta{
	DonationPending:             {Label: "Beklemede", Color: "yellow", Icon: "⏳"},
	DonationApproved:            {Label: "Onaylandı", Color: "blue", Icon: "✔"},
	DonationPreparing:           {Label: "Hazırlanıyor", Color: "indigo", Icon: "📦"},
	DonationReadyForPickup:      {Label: "Teslim Almaya Hazır", Color: "purple", Icon: "📬"},
	DonationInTransit:           {Label: "Yolda", Color: "orange", Icon: "🚚"},
	DonationDelivered:           {Label: "Teslim Edildi", Color: "teal", Icon: "📗"},
	DonationReceivedByRecipient: {Label: "Alıcı Teslim Aldı", Color: "cyan", Icon: "🤝"},
	DonationCompleted:           {Label: "Tamamlandı", Color: "green", Icon: "✅"},
	DonationRejected:            {Label: "Reddedildi", Color: "red", Icon: "⛔"},
	DonationCancelled:           {Label: "İptal Edildi", Color: "gray", Icon: "✖"},
}

func (s DonationStatus) Valid() bool {
	_, ok := donationStatusMeta[s]
	return ok
}

func (s DonationStatus) Meta() StatusMeta {
	if m, ok := donationStatusMeta[s]; ok {
		return m
	}
	return unknownMeta
}

// ParseDonationStatus accepts a status name in any case.
func ParseDonationStatus(v string) (DonationStatus, error) {
	s := DonationStatus(strings.ToUpper(strings.TrimSpace(v)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown donation status %q", v)
	}
	return s, nil
}

// RequestStatus is the lifecycle of a DonationRequest.
type RequestStatus string

const (
	RequestPending   RequestStatus = "PENDING"
	RequestActive    RequestStatus = "ACTIVE"
	RequestCompleted RequestStatus = "COMPLETED"
	RequestCancelled RequestStatus = "CANCELLED"
)

var RequestStatuses = []RequestStatus{RequestPending, RequestActive, RequestCompleted, RequestCancelled}

var requestStatusMeta = map[RequestStatus]StatusMeta{
	RequestPending:   {Label: "Beklemede", Color: "yellow", Icon: "⏳"},
	RequestActive:    {Label: "Aktif", Color: "blue", Icon: "📣"},
	RequestCompleted: {Label: "Tamamlandı", Color: "green", Icon: "✅"},
	RequestCancelled: {Label: "İptal Edildi", Color: "gray", Icon: "✖"},
}

func (s RequestStatus) Valid() bool {
	_, ok := requestStatusMeta[s]
	return ok
}

func (s RequestStatus) Meta() StatusMeta {
	if m, ok := requestStatusMeta[s]; ok {
		return m
	}
	return unknownMeta
}

func ParseRequestStatus(v string) (RequestStatus, error) {
	s := RequestStatus(strings.ToUpper(strings.TrimSpace(v)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown request status %q", v)
	}
	return s, nil
}

// AttendanceStatus is a user's state for one event registration.
type AttendanceStatus string

const (
	AttendanceRegistered AttendanceStatus = "REGISTERED"
	AttendanceConfirmed  AttendanceStatus = "CONFIRMED"
	AttendanceAttended   AttendanceStatus = "ATTENDED"
	AttendanceNoShow     AttendanceStatus = "NO_SHOW"
	AttendanceCancelled  AttendanceStatus = "CANCELLED"
)

var AttendanceStatuses = []AttendanceStatus{
	AttendanceRegistered, AttendanceConfirmed, AttendanceAttended, AttendanceNoShow, AttendanceCancelled,
}

var attendanceStatusMeta = map[AttendanceStatus]StatusMeta{
	AttendanceRegistered: {Label: "Kayıtlı", Color: "blue", Icon: "📝"},
	AttendanceConfirmed:  {Label: "Onaylandı", Color: "indigo", Icon: "✔"},
	AttendanceAttended:   {Label: "Katıldı", Color: "green", Icon: "✅"},
	AttendanceNoShow:     {Label: "Gelmedi", Color: "red", Icon: "🚫"},
	AttendanceCancelled:  {Label: "İptal Edildi", Color: "gray", Icon: "✖"},
}

func (s AttendanceStatus) Valid() bool {
	_, ok := attendanceStatusMeta[s]
	return ok
}

func (s AttendanceStatus) Meta() StatusMeta {
	if m, ok := attendanceStatusMeta[s]; ok {
		return m
	}
	return unknownMeta
}

func ParseAttendanceStatus(v string) (AttendanceStatus, error) {
	s := AttendanceStatus(strings.ToUpper(strings.TrimSpace(v)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown attendance status %q", v)
	}
	return s, nil
}

// DonationType is who a donation is meant for. The backend uses lower case
// for donations and upper case for requests.
type DonationType string

const (
	DonationForSchools    DonationType = "schools"
	DonationForLibraries  DonationType = "libraries"
	DonationForIndividual DonationType = "individual"
)

var donationTypeLabels = map[DonationType]string{
	DonationForSchools:    "Okullar",
	DonationForLibraries:  "Kütüphaneler",
	DonationForIndividual: "Bireysel",
}

func (t DonationType) Valid() bool {
	_, ok := donationTypeLabels[t]
	return ok
}

func (t DonationType) Label() string {
	if l, ok := donationTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// RequestType is the requester category of a DonationRequest.
type RequestType string

const (
	RequestForSchools    RequestType = "SCHOOLS"
	RequestForLibraries  RequestType = "LIBRARIES"
	RequestForIndividual RequestType = "INDIVIDUAL"
)

func (t RequestType) Label() string {
	return DonationType(strings.ToLower(string(t))).Label()
}
