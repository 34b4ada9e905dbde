// ABOUTME: Store interfaces and data types for calibra-api persistence
// ABOUTME: Defines Account, Company, Calibration, Product structs and store interfaces

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrAccountNotFound is returned when an account doesn't exist.
var ErrAccountNotFound = errors.New("account not found")

// ErrEmailExists is returned when trying to create an account with an existing email.
var ErrEmailExists = errors.New("email already registered")

// ErrCompanyNotFound is returned when a company doesn't exist.
var ErrCompanyNotFound = errors.New("company not found")

// ErrCalibrationNotFound is returned when a calibration record doesn't exist.
var ErrCalibrationNotFound = errors.New("calibration not found")

// ErrProductNotFound is returned when a product doesn't exist.
var ErrProductNotFound = errors.New("product not found")

// Role represents an account's authorization role
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ValidRoles lists all valid role values
var ValidRoles = []Role{RoleUser, RoleAdmin}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Account represents a user account. PasswordHash is excluded from JSON so it
// can never leak into a response payload.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Mobile       string    `json:"mobile,omitempty"`
	Role         Role      `json:"role"`
	CompanyID    string    `json:"companyId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Company represents a company that owns calibration records
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Calibration represents a company-scoped calibration record
type Calibration struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"companyId"`
	Instrument   string    `json:"instrument"`
	SerialNumber string    `json:"serialNumber"`
	CalibratedAt time.Time `json:"calibratedAt"`
	DueAt        time.Time `json:"dueAt"`
	Result       string    `json:"result"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Product represents a product record with an optional file attachment
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	AttachmentKey string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
}

// AccountStore defines the interface for account persistence.
// GetAccountByID never returns the password hash; it is the lookup the
// authentication gate performs on every protected request. GetAccountByEmail
// includes the hash and exists for credential verification at login.
type AccountStore interface {
	CreateAccount(ctx context.Context, account *Account) error
	GetAccountByID(ctx context.Context, id string) (*Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
	UpdateAccount(ctx context.Context, account *Account) error
	UpdateAccountRole(ctx context.Context, id string, role Role) error
	DeleteAccount(ctx context.Context, id string) error
	CountAccounts(ctx context.Context) (int, error)
}

// CompanyStore defines the interface for company persistence
type CompanyStore interface {
	CreateCompany(ctx context.Context, company *Company) error
	GetCompany(ctx context.Context, id string) (*Company, error)
	ListCompanies(ctx context.Context) ([]*Company, error)
	UpdateCompany(ctx context.Context, company *Company) error
	DeleteCompany(ctx context.Context, id string) error
}

// CalibrationStore defines the interface for calibration record persistence
type CalibrationStore interface {
	CreateCalibration(ctx context.Context, cal *Calibration) error
	GetCalibration(ctx context.Context, id string) (*Calibration, error)
	ListCalibrations(ctx context.Context, companyID string) ([]*Calibration, error)
	UpdateCalibration(ctx context.Context, cal *Calibration) error
	DeleteCalibration(ctx context.Context, id string) error
}

// ProductStore defines the interface for product persistence
type ProductStore interface {
	CreateProduct(ctx context.Context, product *Product) error
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context) ([]*Product, error)
	UpdateProduct(ctx context.Context, product *Product) error
	SetProductAttachment(ctx context.Context, id, attachmentKey string) error
	DeleteProduct(ctx context.Context, id string) error
}

// Store combines all persistence interfaces
type Store interface {
	AccountStore
	CompanyStore
	CalibrationStore
	ProductStore

	// Close releases any resources held by the store
	Close() error
}
