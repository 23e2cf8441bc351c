package domain

// OrganismCatalog fixes the valid pathogen-screening keys for micro reports.
var OrganismCatalog = []string{
	"E.coli",
	"P. aeruginosa",
	"P. aureus",
	"Salmonella",
	"Clostridia species",
	"C. albicans",
	"B. cepacia",
	"Other",
}

// IngredientCatalog fixes the valid active-ingredient rows for chemistry reports.
var IngredientCatalog = []string{
	"Octyl Methoxycinnamate",
	"Benzophenone-3",
	"Titanium Dioxide",
	"Zinc Oxide",
	"Menthyl Anthranilate",
	"Avobenzone",
	"Salicylic Acid",
	"Benzoyl Peroxide",
	"Hydroquinone",
	"Octocrylene",
	"Benzalkonium Chloride",
	"Homosalate",
	"Other",
}

// MicroFieldKeys are the scalar field names a micro report carries.
var MicroFieldKeys = []string{
	"client",
	"dateSent",
	"typeOfTest",
	"sampleType",
	"description",
	"lotNumber",
	"testSOP",
	"manufactureDate",
	"preliminaryResults",
	"dateTested",
	"dateCompleted",
	"preliminaryResultsDate",
}

// ChemistryFieldKeys are the scalar field names a chemistry report carries.
var ChemistryFieldKeys = []string{
	"client",
	"poNumber",
	"dateSent",
	"sampleDescription",
	"lotBatch",
	"typeOfTest",
	"numberOfActives",
	"formulaNumber",
	"manufactureDate",
	"sampleType",
	"reasonForChanges",
	"witness",
}

var organismSet = toSet(OrganismCatalog)
var ingredientSet = toSet(IngredientCatalog)
var microFieldSet = toSet(MicroFieldKeys)
var chemistryFieldSet = toSet(ChemistryFieldKeys)

func toSet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		set[key] = struct{}{}
	}
	return set
}

// KnownOrganism reports whether the organism is in the fixed catalog.
func KnownOrganism(name string) bool {
	_, ok := organismSet[name]
	return ok
}

// KnownIngredient reports whether the ingredient is in the fixed catalog.
func KnownIngredient(name string) bool {
	_, ok := ingredientSet[name]
	return ok
}

// FieldKeys returns the scalar field catalog for the form type.
func FieldKeys(formType FormType) []string {
	if formType == FormTypeChemistry {
		return ChemistryFieldKeys
	}
	return MicroFieldKeys
}

// KnownField reports whether the key belongs to the form type's field catalog.
func KnownField(formType FormType, key string) bool {
	if formType == FormTypeChemistry {
		_, ok := chemistryFieldSet[key]
		return ok
	}
	_, ok := microFieldSet[key]
	return ok
}

// FieldBucket classifies which capability gates an edit.
type FieldBucket int

const (
	BucketUnknown FieldBucket = iota
	BucketField
	BucketChecklist
	BucketResult
	BucketComments
)

// ClassifyField maps a top-level field name to its capability bucket.
// reviewedBy and reviewedAt are engine-set on review transitions and are not
// directly editable, so they classify as unknown.
func ClassifyField(formType FormType, name string) FieldBucket {
	switch name {
	case "comments":
		return BucketComments
	case "testedBy":
		return BucketResult
	}
	if KnownField(formType, name) {
		return BucketField
	}
	return BucketUnknown
}

// ClassifySubfield maps a nested result subfield to its capability bucket.
func ClassifySubfield(formType FormType, subfield string) FieldBucket {
	if formType == FormTypeMicro {
		switch subfield {
		case "selected":
			return BucketChecklist
		case "present", "absent":
			return BucketResult
		}
		return BucketUnknown
	}
	switch subfield {
	case "checked":
		return BucketChecklist
	case "formulaContent", "result", "dateTested":
		return BucketResult
	}
	return BucketUnknown
}
