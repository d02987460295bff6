package model

import (
	"time"

	"github.com/google/uuid"
)

// PatientBloodProfile is keyed by the patient identity. BloodGroup stays
// nil until the patient (or staff on their behalf) records one.
type PatientBloodProfile struct {
	PatientID    uuid.UUID   `db:"patient_id" json:"patient_id"`
	BloodGroup   *BloodGroup `db:"blood_group" json:"blood_group"`
	DonorConsent bool        `db:"donor_consent" json:"donor_consent"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

type SetBloodGroupRequest struct {
	BloodGroup string `json:"blood_group" binding:"required"`
}

type SetDonorConsentRequest struct {
	DonorConsent *bool `json:"donor_consent" binding:"required"`
}
