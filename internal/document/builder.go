package document

import (
	"github.com/gyeh/medload/internal/identity"
	"github.com/gyeh/medload/internal/model"
)

// Builder shapes cleaned records into nested documents. Doctors and
// Hospitals are separate identity caches owned by the caller for one run.
type Builder struct {
	Doctors   *identity.Resolver
	Hospitals *identity.Resolver
}

// NewBuilder returns a Builder with fresh resolvers.
func NewBuilder() *Builder {
	return &Builder{
		Doctors:   identity.NewResolver(),
		Hospitals: identity.NewResolver(),
	}
}

// Build returns one document per record, in record order.
func (b *Builder) Build(records []model.CleanRecord) []model.Document {
	docs := make([]model.Document, 0, len(records))
	for i := range records {
		docs = append(docs, b.BuildOne(&records[i]))
	}
	return docs
}

// BuildOne resolves the doctor and hospital ids for rec and assembles its document.
func (b *Builder) BuildOne(rec *model.CleanRecord) model.Document {
	doctorID := b.Doctors.Resolve(rec.Doctor)
	hospitalID := b.Hospitals.Resolve(rec.Hospital)

	return model.Document{
		Patient: model.Patient{
			Name:      rec.Name,
			Age:       rec.Age,
			Gender:    rec.Gender,
			BloodType: rec.BloodType,
			Condition: rec.MedicalCondition,
			Insurance: model.Insurance{Provider: rec.InsuranceProvider},
		},
		Encounter: model.Encounter{
			AdmissionDate: rec.AdmissionDate,
			DischargeDate: rec.DischargeDate,
			AdmissionType: rec.AdmissionType,
			Room:          rec.RoomNumber,
			Medication:    rec.Medication,
			TestResults:   rec.TestResults,
			Doctor:        model.EntityRef{ID: doctorID, Name: rec.Doctor},
			Hospital:      model.EntityRef{ID: hospitalID, Name: rec.Hospital},
			BillingAmount: rec.BillingAmount,
		},
	}
}
