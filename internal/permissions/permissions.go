package permissions

import "github.com/balayogigmcs/labms/internal/domain"

// CapabilitySet is the boolean permission bundle controlling which report
// fields a role may edit for a given form type.
type CapabilitySet struct {
	CanEditFields       bool
	CanEditChecklist    bool
	CanEditResultFields bool
	CanEditComments     bool
	CanSubmit           bool
}

// Allows reports whether the capability set permits edits in the bucket.
func (c CapabilitySet) Allows(bucket domain.FieldBucket) bool {
	switch bucket {
	case domain.BucketField:
		return c.CanEditFields
	case domain.BucketChecklist:
		return c.CanEditChecklist
	case domain.BucketResult:
		return c.CanEditResultFields
	case domain.BucketComments:
		return c.CanEditComments
	}
	return false
}

// The micro and chemistry tables carry the same assignments today; they are
// kept separate so either form can diverge without touching the other.
var microTable = map[domain.Role]CapabilitySet{
	domain.RoleAdmin: {},
	domain.RoleClient: {
		CanEditFields:    true,
		CanEditChecklist: true,
		CanSubmit:        true,
	},
	domain.RoleAdministrator: {
		CanEditResultFields: true,
		CanEditComments:     true,
		CanSubmit:           true,
	},
	domain.RoleEmployee: {
		CanEditResultFields: true,
		CanEditComments:     true,
	},
	domain.RoleFrontdesk: {},
}

var chemistryTable = map[domain.Role]CapabilitySet{
	domain.RoleAdmin: {},
	domain.RoleClient: {
		CanEditFields:    true,
		CanEditChecklist: true,
		CanSubmit:        true,
	},
	domain.RoleAdministrator: {
		CanEditResultFields: true,
		CanEditComments:     true,
		CanSubmit:           true,
	},
	domain.RoleEmployee: {
		CanEditResultFields: true,
		CanEditComments:     true,
	},
	domain.RoleFrontdesk: {},
}

// Get returns the capability set for the role and form type. Roles without a
// table entry (head included) fail closed to frontdesk's all-false set, so an
// unrecognized role can never gain write access.
func Get(role domain.Role, formType domain.FormType) CapabilitySet {
	table := microTable
	if formType == domain.FormTypeChemistry {
		table = chemistryTable
	}
	if caps, ok := table[role]; ok {
		return caps
	}
	return table[domain.RoleFrontdesk]
}
