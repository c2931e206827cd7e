package model

// Input column names besides the categorical ones in code_types.go.
const (
	ColName            = "Name"
	ColAge             = "Age"
	ColDateOfAdmission = "Date of Admission"
	ColDoctor          = "Doctor"
	ColHospital        = "Hospital"
	ColBillingAmount   = "Billing Amount"
	ColRoomNumber      = "Room Number"
	ColDischargeDate   = "Discharge Date"
)

// RequiredColumns returns every column an input file must carry, in the
// canonical order of the source dataset.
func RequiredColumns() []string {
	return []string{
		ColName,
		ColAge,
		ColGender,
		ColBloodType,
		ColMedicalCondition,
		ColDateOfAdmission,
		ColDoctor,
		ColHospital,
		ColInsuranceProvider,
		ColBillingAmount,
		ColRoomNumber,
		ColAdmissionType,
		ColDischargeDate,
		ColMedication,
		ColTestResults,
	}
}

// RawRecord is one untyped input row keyed by exact column name.
type RawRecord struct {
	Line   int64 // 1-based data row number in the source file
	Fields map[string]string
}

// Get returns the value for col, or "" if the column is absent.
func (r RawRecord) Get(col string) string {
	return r.Fields[col]
}
