package normalize

import (
	"github.com/gyeh/medload/internal/model"
)

// CleanTable converts every raw record into a CleanRecord. The input slice is
// not modified. The first row that fails to clean aborts the whole table.
func CleanTable(rows []model.RawRecord) ([]model.CleanRecord, error) {
	out := make([]model.CleanRecord, 0, len(rows))
	for i := range rows {
		rec, err := ToCleanRecord(rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}

// ToCleanRecord applies the per-column cleaning rules to a single row.
func ToCleanRecord(row model.RawRecord) (*model.CleanRecord, error) {
	c := &model.CleanRecord{
		Line:     row.Line,
		Name:     TitleName(row.Get(model.ColName)),
		Doctor:   row.Get(model.ColDoctor),
		Hospital: row.Get(model.ColHospital),
	}

	var err error
	if c.Age, err = parseInt(row, model.ColAge); err != nil {
		return nil, err
	}
	if c.RoomNumber, err = parseInt(row, model.ColRoomNumber); err != nil {
		return nil, err
	}

	if c.AdmissionDate, err = ParseDate(row.Get(model.ColDateOfAdmission)); err != nil {
		return nil, parseErr(row, model.ColDateOfAdmission, err)
	}
	if c.DischargeDate, err = ParseDate(row.Get(model.ColDischargeDate)); err != nil {
		return nil, parseErr(row, model.ColDischargeDate, err)
	}

	if c.BillingAmount, err = ParseMoney(row.Get(model.ColBillingAmount)); err != nil {
		return nil, parseErr(row, model.ColBillingAmount, err)
	}

	// Categorical columns
	targets := map[string]*int{
		model.ColGender:            &c.Gender,
		model.ColBloodType:         &c.BloodType,
		model.ColMedicalCondition:  &c.MedicalCondition,
		model.ColInsuranceProvider: &c.InsuranceProvider,
		model.ColAdmissionType:     &c.AdmissionType,
		model.ColMedication:        &c.Medication,
		model.ColTestResults:       &c.TestResults,
	}
	for _, col := range model.AllCategoryColumns {
		code, err := EncodeCategory(col, row.Get(col.Name))
		if err != nil {
			if uce, ok := err.(*UnknownCategoryError); ok {
				uce.Line = row.Line
			}
			return nil, err
		}
		*targets[col.Name] = code
	}

	return c, nil
}

func parseInt(row model.RawRecord, col string) (int, error) {
	v, err := model.ParseWholeNumber(row.Get(col))
	if err != nil {
		return 0, parseErr(row, col, err)
	}
	return int(v), nil
}

func parseErr(row model.RawRecord, col string, err error) *ParseError {
	return &ParseError{Line: row.Line, Column: col, Value: row.Get(col), Err: err}
}
