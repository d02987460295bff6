package model

import "time"

type DonorKind string

const (
	DonorKindIndividual DonorKind = "individual"
	DonorKindBloodBank  DonorKind = "blood_bank"
)

type DonorRecord struct {
	Base
	Name             string     `db:"name" json:"name"`
	Kind             DonorKind  `db:"kind" json:"kind"`
	BloodGroup       BloodGroup `db:"blood_group" json:"blood_group"`
	Phone            string     `db:"phone" json:"phone,omitempty"`
	Address          string     `db:"address" json:"address"`
	City             string     `db:"city" json:"city"`
	State            string     `db:"state" json:"state"`
	Pincode          string     `db:"pincode" json:"pincode"`
	IsAvailable      bool       `db:"is_available" json:"is_available"`
	ConsentGiven     bool       `db:"consent_given" json:"consent_given"`
	LastDonationDate *time.Time `db:"last_donation_date" json:"last_donation_date,omitempty"`
}

type RegisterDonorRequest struct {
	Name             string     `json:"name" binding:"required"`
	Kind             string     `json:"kind" binding:"omitempty,oneof=individual blood_bank"`
	BloodGroup       string     `json:"blood_group" binding:"required,bloodgroup"`
	Phone            string     `json:"phone"`
	Address          string     `json:"address" binding:"required"`
	City             string     `json:"city"`
	State            string     `json:"state"`
	Pincode          string     `json:"pincode"`
	ConsentGiven     bool       `json:"consent_given" binding:"required"`
	LastDonationDate *time.Time `json:"last_donation_date"`
}

type UpdateAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}
