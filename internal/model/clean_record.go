package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CleanRecord is a fully typed, validated input row. Categorical fields hold
// their integer codes; Doctor and Hospital keep the raw input strings because
// they are identity lookup keys.
type CleanRecord struct {
	Line int64

	Name string
	Age  int

	Gender            int
	BloodType         int
	MedicalCondition  int
	InsuranceProvider int
	AdmissionType     int
	Medication        int
	TestResults       int

	AdmissionDate time.Time
	DischargeDate time.Time
	RoomNumber    int

	Doctor   string
	Hospital string

	// Billing amount as an exact decimal
	BillingAmount primitive.Decimal128
}
