// Package models holds the entities the admin client reads from and sends
// to the backend. The backend owns the schema; these are transient copies.
package models

// Donation is a book-giving offer tracked through the fulfilment pipeline.
// ID is nil until the backend has persisted it.
type Donation struct {
	ID                    *int64         `json:"id,omitempty"`
	BookTitle             string         `json:"bookTitle"`
	Author                string         `json:"author"`
	Genre                 string         `json:"genre"`
	Condition             string         `json:"condition"`
	Quantity              int            `json:"quantity"`
	Description           string         `json:"description,omitempty"`
	DonationType          DonationType   `json:"donationType"`
	InstitutionName       string         `json:"institutionName,omitempty"`
	RecipientName         string         `json:"recipientName,omitempty"`
	Status                DonationStatus `json:"status,omitempty"`
	StatusNote            string         `json:"statusNote,omitempty"`
	TrackingCode          string         `json:"trackingCode,omitempty"`
	DeliveryMethod        string         `json:"deliveryMethod,omitempty"`
	EstimatedDeliveryDate Timestamp      `json:"estimatedDeliveryDate"`
	HandlerName           string         `json:"handlerName,omitempty"`
	CreatedAt             Timestamp      `json:"createdAt"`
}

// DonationID returns the id and whether the donation has one.
func (d *Donation) DonationID() (int64, bool) {
	if d.ID == nil {
		return 0, false
	}
	return *d.ID, true
}

// Recipient is the institution for school/library donations and the
// person for individual ones.
func (d *Donation) Recipient() string {
	if d.InstitutionName != "" {
		return d.InstitutionName
	}
	return d.RecipientName
}

// TrackingInfo is the shipping block of a donation, edited together.
type TrackingInfo struct {
	TrackingCode          string    `json:"trackingCode"`
	DeliveryMethod        string    `json:"deliveryMethod"`
	EstimatedDeliveryDate Timestamp `json:"estimatedDeliveryDate"`
}

// Tracking extracts the current tracking block.
func (d *Donation) Tracking() TrackingInfo {
	return TrackingInfo{
		TrackingCode:          d.TrackingCode,
		DeliveryMethod:        d.DeliveryMethod,
		EstimatedDeliveryDate: d.EstimatedDeliveryDate,
	}
}

// IsZero reports whether no tracking field is set.
func (t TrackingInfo) IsZero() bool {
	return t.TrackingCode == "" && t.DeliveryMethod == "" && t.EstimatedDeliveryDate.IsZero()
}
