package models

// RoleAdmin is the only role the admin views accept.
const RoleAdmin = "ADMIN"

// User is the account as the admin views see it. It is never mutated here.
type User struct {
	ID       int64     `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email,omitempty"`
	Role     string    `json:"role"`
	Created  Timestamp `json:"createdAt"`
}

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// LoginResult is what /api/auth/login returns.
type LoginResult struct {
	Token    string `json:"token"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Statistics is the summary block shown on the admin dashboard.
type Statistics struct {
	TotalDonations   int            `json:"totalDonations"`
	TotalRequests    int            `json:"totalRequests"`
	TotalUsers       int            `json:"totalUsers"`
	TotalEvents      int            `json:"totalEvents"`
	BooksDonated     int            `json:"booksDonated"`
	DonationsByState map[string]int `json:"donationsByStatus,omitempty"`
}
