package models

// DonationRequest is a solicitation for books from an institution or a
// person. Its lifecycle is separate from Donation.
type DonationRequest struct {
	ID              int64         `json:"id"`
	BookTitle       string        `json:"bookTitle"`
	Author          string        `json:"author"`
	Genre           string        `json:"genre"`
	Quantity        int           `json:"quantity"`
	Type            RequestType   `json:"type"`
	Status          RequestStatus `json:"status"`
	RequesterName   string        `json:"requesterName"`
	InstitutionName string        `json:"institutionName,omitempty"`
	Address         string        `json:"address,omitempty"`
	Latitude        float64       `json:"latitude,omitempty"`
	Longitude       float64       `json:"longitude,omitempty"`
	CreatedAt       Timestamp     `json:"createdAt"`
}
