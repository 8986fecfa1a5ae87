package membership

// MembershipPlan represents the billing cadence of a membership
type MembershipPlan string

const (
	PlanMonthly    MembershipPlan = "Monthly"
	PlanQuarterly  MembershipPlan = "Quarterly"
	PlanHalfYearly MembershipPlan = "Half-Yearly"
	PlanYearly     MembershipPlan = "Yearly"
)

// Months returns the renewal interval of the plan in whole months.
// Unrecognized plans fall back to 1 month; this is a total function and
// never fails.
func (p MembershipPlan) Months() int {
	switch p {
	case PlanMonthly:
		return 1
	case PlanQuarterly:
		return 3
	case PlanHalfYearly:
		return 6
	case PlanYearly:
		return 12
	default:
		return 1
	}
}

// IsValid reports whether the plan is one of the known values
func (p MembershipPlan) IsValid() bool {
	switch p {
	case PlanMonthly, PlanQuarterly, PlanHalfYearly, PlanYearly:
		return true
	default:
		return false
	}
}
