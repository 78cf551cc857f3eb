package models

import "time"

// Application statuses follow the admissions workflow.
const (
	ApplicationSubmitted = "submitted"
	ApplicationConfirmed = "admissions_confirmed"
	ApplicationFeesSet   = "fees_set"
)

// Application is an admissions application cached from the canonical store.
// The ID is the canonical external identifier; reconciliation uses it to
// avoid inserting the same application twice.
type Application struct {
	ID            string     `json:"id"`
	ApplicantName string     `json:"applicantName"`
	ParentPhone   string     `json:"parentPhone"`
	Grade         string     `json:"grade"`
	Section       string     `json:"section"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	ConfirmedAt   *time.Time `json:"confirmedAt,omitempty"`
}

// Confirm moves the application to admissions_confirmed. The transition is
// one-way; confirming twice only refreshes the timestamp.
func (a *Application) Confirm() {
	a.Status = ApplicationConfirmed
	now := time.Now()
	a.ConfirmedAt = &now
}

// Fee is the admission fee schedule set for a single application.
type Fee struct {
	AppID     string     `json:"appId"`
	Items     []LineItem `json:"items"`
	Total     float64    `json:"total"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Parent is a cached parent record created at signup.
type Parent struct {
	Phone      string    `json:"phone"`
	ParentName string    `json:"parentName"`
	Password   string    `json:"password"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ParentProfile mirrors Parent inside the profiles section.
type ParentProfile struct {
	Phone      string `json:"phone"`
	ParentName string `json:"parentName"`
	Password   string `json:"password"`
}

// StudentProfile is a cached roster entry. Students have no canonical numeric
// id here; the (name, fatherPhone) pair is the natural key.
type StudentProfile struct {
	Name         string `json:"name"`
	FatherPhone  string `json:"fatherPhone"`
	Grade        string `json:"grade"`
	Section      string `json:"section,omitempty"`
	Roll         string `json:"roll,omitempty"`
	PhotoDataURL string `json:"photoDataUrl,omitempty"`
	AppID        string `json:"appId,omitempty"`
}
