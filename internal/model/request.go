package model

import "github.com/google/uuid"

type RequestUrgency string

const (
	UrgencyCritical RequestUrgency = "critical"
	UrgencyHigh     RequestUrgency = "high"
	UrgencyMedium   RequestUrgency = "medium"
	UrgencyLow      RequestUrgency = "low"
)

type RequestStatus string

const (
	RequestStatusActive    RequestStatus = "active"
	RequestStatusFulfilled RequestStatus = "fulfilled"
	RequestStatusCancelled RequestStatus = "cancelled"
)

type BloodRequest struct {
	Base
	BloodGroup    BloodGroup     `db:"blood_group" json:"blood_group"`
	UnitsNeeded   int            `db:"units_needed" json:"units_needed"`
	Urgency       RequestUrgency `db:"urgency" json:"urgency"`
	PatientID     uuid.UUID      `db:"patient_id" json:"patient_id"`
	HospitalName  string         `db:"hospital_name" json:"hospital_name,omitempty"`
	ContactPerson string         `db:"contact_person" json:"contact_person"`
	ContactPhone  string         `db:"contact_phone" json:"contact_phone"`
	Address       string         `db:"address" json:"address"`
	City          string         `db:"city" json:"city"`
	State         string         `db:"state" json:"state"`
	Pincode       string         `db:"pincode" json:"pincode"`
	Notes         string         `db:"notes" json:"notes,omitempty"`
	Status        RequestStatus  `db:"status" json:"status"`
	RequestedBy   uuid.UUID      `db:"requested_by" json:"requested_by"`
}

type CreateBloodRequestRequest struct {
	BloodGroup    string `json:"blood_group"`
	UnitsNeeded   int    `json:"units_needed"`
	Urgency       string `json:"urgency" binding:"omitempty,oneof=critical high medium low"`
	PatientID     string `json:"patient_id"`
	HospitalName  string `json:"hospital_name"`
	ContactPerson string `json:"contact_person"`
	ContactPhone  string `json:"contact_phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Pincode       string `json:"pincode"`
	Notes         string `json:"notes"`
}
