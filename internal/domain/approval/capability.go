package approval

type Capability string

const (
	// Specialist capabilities: create, submit, edit and delete drafts.
	CapabilityPayrollSpecialist Capability = "payroll.specialist"
	CapabilityHRSpecialist      Capability = "hr.specialist"

	// Approver capabilities: approve, reject, and privileged deletes.
	CapabilityPayrollManager Capability = "payroll.manager"
	CapabilityHRManager      Capability = "hr.manager"
	CapabilitySystemAdmin    Capability = "system.admin"
)

// Actor carries an explicit capability set into each workflow operation.
// Capabilities are resolved at the transport boundary; services never read
// them from ambient context.
type Actor struct {
	ID           string
	Capabilities []Capability
}

// Has checks if the actor holds a capability.
func (a Actor) Has(capability Capability) bool {
	for _, c := range a.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// RoleCapabilities maps access-token roles to capability sets.
var RoleCapabilities = map[string][]Capability{
	"payroll_specialist": {
		CapabilityPayrollSpecialist,
	},
	"hr_specialist": {
		CapabilityHRSpecialist,
	},
	"payroll_manager": {
		CapabilityPayrollSpecialist,
		CapabilityPayrollManager,
	},
	"hr_manager": {
		CapabilityHRSpecialist,
		CapabilityHRManager,
	},
	"system_admin": {
		CapabilityPayrollSpecialist,
		CapabilityHRSpecialist,
		CapabilityPayrollManager,
		CapabilityHRManager,
		CapabilitySystemAdmin,
	},
}

// ActorForRole builds an actor from a token role. Unknown roles yield an
// actor with no capabilities.
func ActorForRole(id string, role string) Actor {
	return Actor{ID: id, Capabilities: RoleCapabilities[role]}
}
