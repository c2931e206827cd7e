package model

import (
	"fmt"
	"strconv"
	"strings"
)

// MedicalRecordRow mirrors the Parquet schema for one healthcare record.
// Age and room are typed in Parquet and rendered back to strings so that
// Parquet and CSV inputs go through the same cleaning rules. Billing amounts
// are stored as their decimal text so no precision or scale is lost.
type MedicalRecordRow struct {
	Name              string `parquet:"Name"`
	Age               int64  `parquet:"Age"`
	Gender            string `parquet:"Gender"`
	BloodType         string `parquet:"Blood Type"`
	MedicalCondition  string `parquet:"Medical Condition"`
	DateOfAdmission   string `parquet:"Date of Admission"`
	Doctor            string `parquet:"Doctor"`
	Hospital          string `parquet:"Hospital"`
	InsuranceProvider string `parquet:"Insurance Provider"`
	BillingAmount     string `parquet:"Billing Amount"`
	RoomNumber        int64  `parquet:"Room Number"`
	AdmissionType     string `parquet:"Admission Type"`
	DischargeDate     string `parquet:"Discharge Date"`
	Medication        string `parquet:"Medication"`
	TestResults       string `parquet:"Test Results"`
}

// ToRawRecord converts the typed row into a RawRecord for the given line.
func (r *MedicalRecordRow) ToRawRecord(line int64) RawRecord {
	return RawRecord{
		Line: line,
		Fields: map[string]string{
			ColName:              r.Name,
			ColAge:               strconv.FormatInt(r.Age, 10),
			ColGender:            r.Gender,
			ColBloodType:         r.BloodType,
			ColMedicalCondition:  r.MedicalCondition,
			ColDateOfAdmission:   r.DateOfAdmission,
			ColDoctor:            r.Doctor,
			ColHospital:          r.Hospital,
			ColInsuranceProvider: r.InsuranceProvider,
			ColBillingAmount:     r.BillingAmount,
			ColRoomNumber:        strconv.FormatInt(r.RoomNumber, 10),
			ColAdmissionType:     r.AdmissionType,
			ColDischargeDate:     r.DischargeDate,
			ColMedication:        r.Medication,
			ColTestResults:       r.TestResults,
		},
	}
}

// MedicalRecordRowFromRaw builds a typed row from a RawRecord. Only age and
// room number are parsed; everything else, billing included, is copied as-is.
func MedicalRecordRowFromRaw(rec RawRecord) (MedicalRecordRow, error) {
	row := MedicalRecordRow{
		Name:              rec.Get(ColName),
		Gender:            rec.Get(ColGender),
		BloodType:         rec.Get(ColBloodType),
		MedicalCondition:  rec.Get(ColMedicalCondition),
		DateOfAdmission:   rec.Get(ColDateOfAdmission),
		Doctor:            rec.Get(ColDoctor),
		Hospital:          rec.Get(ColHospital),
		InsuranceProvider: rec.Get(ColInsuranceProvider),
		BillingAmount:     strings.TrimSpace(rec.Get(ColBillingAmount)),
		AdmissionType:     rec.Get(ColAdmissionType),
		DischargeDate:     rec.Get(ColDischargeDate),
		Medication:        rec.Get(ColMedication),
		TestResults:       rec.Get(ColTestResults),
	}

	var err error
	if row.Age, err = ParseWholeNumber(rec.Get(ColAge)); err != nil {
		return row, fmt.Errorf("row %d %s: %w", rec.Line, ColAge, err)
	}
	if row.RoomNumber, err = ParseWholeNumber(rec.Get(ColRoomNumber)); err != nil {
		return row, fmt.Errorf("row %d %s: %w", rec.Line, ColRoomNumber, err)
	}
	return row, nil
}
