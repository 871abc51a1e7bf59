package dto

import (
	"time"

	"github.com/spec-kit/realty-service/internal/domain"
)

// AgentCreateRequest payload for agent profile registration.
type AgentCreateRequest struct {
	IDOrPassportNumber  string     `json:"id_or_passport_number"`
	PhysicalAddress     string     `json:"physical_address"`
	OfficeAddress       string     `json:"office_address"`
	LicenseSerialNumber string     `json:"license_serial_number"`
	LicenseIssuedAt     *time.Time `json:"license_issued_at,omitempty"`
}

// CompanyCreateRequest payload for company registration.
type CompanyCreateRequest struct {
	Name               string `json:"name"`
	RegistrationNumber string `json:"registration_number"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	Address            string `json:"address"`
	Website            string `json:"website"`
}

// PropertyCreateRequest payload for property listings.
type PropertyCreateRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	PhysicalAddress string  `json:"physical_address"`
	City            string  `json:"city"`
	Price           float64 `json:"price"`
	Bedrooms        int     `json:"bedrooms"`
	Bathrooms       int     `json:"bathrooms"`
	SizeSqft        *int    `json:"size_sqft,omitempty"`
}

// AgentResponse is the public agent projection.
type AgentResponse struct {
	ID                  string     `json:"id"`
	UserID              string     `json:"user_id"`
	IDOrPassportNumber  string     `json:"id_or_passport_number"`
	PhysicalAddress     string     `json:"physical_address"`
	OfficeAddress       string     `json:"office_address"`
	LicenseSerialNumber string     `json:"license_serial_number"`
	Status              string     `json:"status"`
	Verified            bool       `json:"verified"`
	VerificationNotes   *string    `json:"verification_notes,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	VerifiedAt          *time.Time `json:"verified_at,omitempty"`
}

// CompanyResponse is the public company projection.
type CompanyResponse struct {
	ID                 string     `json:"id"`
	CreatedBy          string     `json:"created_by"`
	Name               string     `json:"name"`
	RegistrationNumber string     `json:"registration_number"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone"`
	Address            string     `json:"address"`
	Website            string     `json:"website"`
	Status             string     `json:"status"`
	Verified           bool       `json:"verified"`
	VerificationNotes  *string    `json:"verification_notes,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	VerifiedAt         *time.Time `json:"verified_at,omitempty"`
}

// PropertyResponse is the public property projection.
type PropertyResponse struct {
	ID              string     `json:"id"`
	AddedBy         string     `json:"added_by"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	PhysicalAddress string     `json:"physical_address"`
	City            string     `json:"city"`
	Price           float64    `json:"price"`
	Bedrooms        int        `json:"bedrooms"`
	Bathrooms       int        `json:"bathrooms"`
	SizeSqft        *int       `json:"size_sqft,omitempty"`
	Status          string     `json:"status"`
	Approved        bool       `json:"approved"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
}

// NewAgentResponse builds the agent projection.
func NewAgentResponse(agent *domain.Agent) AgentResponse {
	return AgentResponse{
		ID:                  agent.ID,
		UserID:              agent.UserID,
		IDOrPassportNumber:  agent.IDOrPassportNumber,
		PhysicalAddress:     agent.PhysicalAddress,
		OfficeAddress:       agent.OfficeAddress,
		LicenseSerialNumber: agent.LicenseSerialNumber,
		Status:              string(agent.Status),
		Verified:            agent.Verified,
		VerificationNotes:   agent.VerificationNotes,
		CreatedAt:           agent.CreatedAt,
		VerifiedAt:          agent.VerifiedAt,
	}
}

// NewCompanyResponse builds the company projection.
func NewCompanyResponse(company *domain.Company) CompanyResponse {
	return CompanyResponse{
		ID:                 company.ID,
		CreatedBy:          company.CreatedBy,
		Name:               company.Name,
		RegistrationNumber: company.RegistrationNumber,
		Email:              company.Email,
		Phone:              company.Phone,
		Address:            company.Address,
		Website:            company.Website,
		Status:             string(company.Status),
		Verified:           company.Verified,
		VerificationNotes:  company.VerificationNotes,
		CreatedAt:          company.CreatedAt,
		VerifiedAt:         company.VerifiedAt,
	}
}

// NewPropertyResponse builds the property projection.
func NewPropertyResponse(property *domain.Property) PropertyResponse {
	return PropertyResponse{
		ID:              property.ID,
		AddedBy:         property.AddedBy,
		Name:            property.Name,
		Description:     property.Description,
		PhysicalAddress: property.PhysicalAddress,
		City:            property.City,
		Price:           property.Price,
		Bedrooms:        property.Bedrooms,
		Bathrooms:       property.Bathrooms,
		SizeSqft:        property.SizeSqft,
		Status:          string(property.Status),
		Approved:        property.Approved,
		RejectionReason: property.RejectionReason,
		CreatedAt:       property.CreatedAt,
		ApprovedAt:      property.ApprovedAt,
	}
}
