package domain

import (
	util "github.com/balayogigmcs/labms/pkg/util"
)

// Validate checks structural integrity of the report before persistence: the
// payload variant must match the form type, every payload key must come from
// the fixed catalog, present/absent must never both be set, and chemistry rows
// may carry result text only when checked.
func (r *LabReport) Validate() error {
	switch r.FormType {
	case FormTypeMicro:
		if r.Chemistry != nil {
			return util.NewValidationError("micro report cannot carry a chemistry payload", nil)
		}
		for organism, result := range r.Micro {
			if !KnownOrganism(organism) {
				return util.NewValidationError("unrecognized organism", map[string]any{"organism": organism})
			}
			if result.Present && result.Absent {
				return util.NewValidationError("present and absent are mutually exclusive", map[string]any{"organism": organism})
			}
		}
	case FormTypeChemistry:
		if r.Micro != nil {
			return util.NewValidationError("chemistry report cannot carry a pathogen payload", nil)
		}
		for _, entry := range r.Chemistry {
			if !KnownIngredient(entry.Ingredient) {
				return util.NewValidationError("unrecognized active ingredient", map[string]any{"ingredient": entry.Ingredient})
			}
			if !entry.Checked && (entry.FormulaContent != "" || entry.Result != "" || entry.DateTested != "") {
				return util.NewValidationError("results require the ingredient to be checked", map[string]any{"ingredient": entry.Ingredient})
			}
		}
	default:
		return util.NewValidationError("unknown form type", map[string]any{"formType": r.FormType})
	}

	for key := range r.Fields {
		if !KnownField(r.FormType, key) {
			return util.NewValidationError("unknown field key", map[string]any{"field": key})
		}
	}
	return nil
}
