package models

// Domain models matching the database schema in db/migrations/0001_init.sql

// Company groups profiles under an owner, general contractor or
// specialty contractor organization.
type Company struct {
	ID      string `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Type    string `json:"type" db:"type"`
	Address string `json:"address,omitempty" db:"address"`
	Phone   string `json:"phone,omitempty" db:"phone"`
	Email   string `json:"email,omitempty" db:"email"`
	Website string `json:"website,omitempty" db:"website"`
	Created int64  `json:"created" db:"created"`
	Updated int64  `json:"updated" db:"updated"`
}

// Profile is a user account. The password hash never leaves the
// server: it is excluded from JSON serialization.
type Profile struct {
	ID           string  `json:"id" db:"id"`
	Email        string  `json:"email" db:"email"`
	FullName     string  `json:"full_name" db:"full_name"`
	PasswordHash string  `json:"-" db:"password_hash"`
	Role         string  `json:"role" db:"role"`
	CompanyID    *string `json:"company_id,omitempty" db:"company_id"`
	Created      int64   `json:"created" db:"created"`
	Updated      int64   `json:"updated" db:"updated"`
}

// Project is the aggregate root: deleting one cascades to its
// documents, bids, inspections and change orders.
type Project struct {
	ID          string  `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description string  `json:"description" db:"description"`
	Status      string  `json:"status" db:"status"`
	StartDate   *string `json:"start_date" db:"start_date"`
	EndDate     *string `json:"end_date" db:"end_date"`
	Budget      float64 `json:"budget" db:"budget_cents"`
	ActualCost  float64 `json:"actual_cost" db:"actual_cost_cents"`
	Progress    int     `json:"progress" db:"progress"`
	Location    string  `json:"location" db:"location"`
	Phase       string  `json:"phase" db:"phase"`
}

// ProjectDetail is the detail-endpoint shape: a project plus its
// child collections.
type ProjectDetail struct {
	Project
	Documents    []Document    `json:"documents"`
	Bids         []Bid         `json:"bids"`
	Inspections  []Inspection  `json:"inspections"`
	ChangeOrders []ChangeOrder `json:"change_orders"`
}

type Document struct {
	ID         string `json:"id" db:"id"`
	ProjectID  string `json:"project_id" db:"project_id"`
	Name       string `json:"name" db:"name"`
	Type       string `json:"type" db:"type"`
	Version    string `json:"version" db:"version"`
	UploadedBy string `json:"uploaded_by,omitempty" db:"uploaded_by"`
	Created    int64  `json:"created" db:"created"`
}

type Bid struct {
	ID        string  `json:"id" db:"id"`
	ProjectID string  `json:"project_id" db:"project_id"`
	Title     string  `json:"title" db:"title"`
	Status    string  `json:"status" db:"status"`
	Amount    float64 `json:"amount" db:"amount_cents"`
	CreatedBy string  `json:"created_by,omitempty" db:"created_by"`
	Created   int64   `json:"created" db:"created"`
}

type Inspection struct {
	ID          string `json:"id" db:"id"`
	ProjectID   string `json:"project_id" db:"project_id"`
	Title       string `json:"title" db:"title"`
	Status      string `json:"status" db:"status"`
	Notes       string `json:"notes,omitempty" db:"notes"`
	InspectorID string `json:"inspector_id,omitempty" db:"inspector_id"`
	Created     int64  `json:"created" db:"created"`
}

// ChangeOrder amounts may be negative to represent credits.
type ChangeOrder struct {
	ID          string  `json:"id" db:"id"`
	ProjectID   string  `json:"project_id" db:"project_id"`
	Title       string  `json:"title" db:"title"`
	Amount      float64 `json:"amount" db:"amount_cents"`
	Status      string  `json:"status" db:"status"`
	SubmittedBy string  `json:"submitted_by,omitempty" db:"submitted_by"`
	Created     int64   `json:"created" db:"created"`
}
