package approval

import (
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/configuration"
)

// Descriptor parameterizes the workflow state machine for one configuration
// kind: which capability may submit and edit, which may approve and reject,
// and whether approved items may be deleted by the approver.
type Descriptor struct {
	Kind             configuration.Kind
	Specialist       Capability
	Approver         Capability
	PrivilegedDelete bool
}

// Descriptors holds the workflow parameters for every configuration kind.
// Insurance brackets are reviewed by HR; company settings by the system
// administrator; everything else by the payroll manager.
var Descriptors = map[configuration.Kind]Descriptor{
	configuration.KindPayGrade: {
		Kind:       configuration.KindPayGrade,
		Specialist: CapabilityPayrollSpecialist,
		Approver:   CapabilityPayrollManager,
	},
	configuration.KindAllowance: {
		Kind:       configuration.KindAllowance,
		Specialist: CapabilityPayrollSpecialist,
		Approver:   CapabilityPayrollManager,
	},
	configuration.KindTaxRule: {
		Kind:       configuration.KindTaxRule,
		Specialist: CapabilityPayrollSpecialist,
		Approver:   CapabilityPayrollManager,
	},
	configuration.KindInsuranceBracket: {
		Kind:       configuration.KindInsuranceBracket,
		Specialist: CapabilityHRSpecialist,
		Approver:   CapabilityHRManager,
	},
	configuration.KindPayrollPolicy: {
		Kind:       configuration.KindPayrollPolicy,
		Specialist: CapabilityPayrollSpecialist,
		Approver:   CapabilityPayrollManager,
	},
	configuration.KindSigningBonus: {
		Kind:       configuration.KindSigningBonus,
		Specialist: CapabilityPayrollSpecialist,
		Approver:   CapabilityPayrollManager,
	},
	configuration.KindPayType: {
		Kind:             configuration.KindPayType,
		Specialist:       CapabilityPayrollSpecialist,
		Approver:         CapabilityPayrollManager,
		PrivilegedDelete: true,
	},
	configuration.KindTerminationBenefit: {
		Kind:             configuration.KindTerminationBenefit,
		Specialist:       CapabilityPayrollSpecialist,
		Approver:         CapabilityPayrollManager,
		PrivilegedDelete: true,
	},
	configuration.KindCompanySettings: {
		Kind:       configuration.KindCompanySettings,
		Specialist: CapabilityPayrollSpecialist,
		Approver:   CapabilitySystemAdmin,
	},
}

// DescriptorFor returns the workflow descriptor for a kind.
func DescriptorFor(kind configuration.Kind) (Descriptor, bool) {
	d, ok := Descriptors[kind]
	return d, ok
}
