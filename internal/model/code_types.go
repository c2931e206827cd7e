package model

// Categorical column names. These are exact-match header names in the input.
const (
	ColGender            = "Gender"
	ColBloodType         = "Blood Type"
	ColMedicalCondition  = "Medical Condition"
	ColInsuranceProvider = "Insurance Provider"
	ColAdmissionType     = "Admission Type"
	ColMedication        = "Medication"
	ColTestResults       = "Test Results"
)

// CategoryColumn maps the human-readable labels of one categorical column to
// the integer codes stored in documents.
type CategoryColumn struct {
	Name   string   // input column name, e.g. "Blood Type"
	Labels []string // labels in code order; the first label has code 1
}

// Code returns the integer code for label, or ok=false if the label is unknown.
func (c CategoryColumn) Code(label string) (int, bool) {
	for i, l := range c.Labels {
		if l == label {
			return i + 1, true
		}
	}
	return 0, false
}

// AllCategoryColumns lists the categorical columns in canonical order.
var AllCategoryColumns = []CategoryColumn{
	{Name: ColGender, Labels: []string{"Male", "Female"}},
	{Name: ColBloodType, Labels: []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}},
	{Name: ColMedicalCondition, Labels: []string{"Diabetes", "Asthma", "Hypertension", "Arthritis", "Cancer", "Obesity"}},
	{Name: ColInsuranceProvider, Labels: []string{"Blue Cross", "Aetna", "Cigna", "UnitedHealthcare", "Medicare"}},
	{Name: ColAdmissionType, Labels: []string{"Urgent", "Emergency", "Elective"}},
	{Name: ColMedication, Labels: []string{"Insulin", "Ibuprofen", "Paracetamol", "Aspirin", "Penicillin", "Lipitor"}},
	{Name: ColTestResults, Labels: []string{"Normal", "Abnormal", "Inconclusive"}},
}

// CategoryColumnByName returns the CategoryColumn for the given column name, or ok=false.
func CategoryColumnByName(name string) (CategoryColumn, bool) {
	for _, c := range AllCategoryColumns {
		if c.Name == name {
			return c, true
		}
	}
	return CategoryColumn{}, false
}
