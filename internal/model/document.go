package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is the unit of storage: one patient encounter.
type Document struct {
	Patient   Patient   `bson:"patient" json:"patient"`
	Encounter Encounter `bson:"encounter" json:"encounter"`
}

// Patient holds demographic and coded clinical fields.
type Patient struct {
	Name      string    `bson:"name" json:"name"`
	Age       int       `bson:"age" json:"age"`
	Gender    int       `bson:"gender" json:"gender"`
	BloodType int       `bson:"bloodType" json:"bloodType"`
	Condition int       `bson:"condition" json:"condition"`
	Insurance Insurance `bson:"insurance" json:"insurance"`
}

type Insurance struct {
	Provider int `bson:"provider" json:"provider"`
}

// Encounter holds one hospital stay.
type Encounter struct {
	AdmissionDate time.Time            `bson:"admissionDate" json:"admissionDate"`
	DischargeDate time.Time            `bson:"dischargeDate" json:"dischargeDate"`
	AdmissionType int                  `bson:"admissionType" json:"admissionType"`
	Room          int                  `bson:"room" json:"room"`
	Medication    int                  `bson:"medication" json:"medication"`
	TestResults   int                  `bson:"testResults" json:"testResults"`
	Doctor        EntityRef            `bson:"doctor" json:"doctor"`
	Hospital      EntityRef            `bson:"hospital" json:"hospital"`
	BillingAmount primitive.Decimal128 `bson:"billingAmount" json:"billingAmount"`
}

// EntityRef is a resolved reference to a doctor or hospital.
type EntityRef struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// Indexed field paths.
const (
	PathPatientName   = "patient.name"
	PathAdmissionDate = "encounter.admissionDate"
	PathHospitalID    = "encounter.hospital.id"
	PathDoctorID      = "encounter.doctor.id"
)
