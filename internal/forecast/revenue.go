package forecast

import "math"

// Team is the doctor headcount of the practice by contract type.
type Team struct {
	Assoc   float64 // partners
	Indep   float64 // independents
	Interne float64 // salaried
}

// Size is the total doctor headcount.
func (t Team) Size() float64 {
	return t.Assoc + t.Indep + t.Interne
}

// RevenueSplit is one month of practice revenue by source.
type RevenueSplit struct {
	Assoc   float64
	Indep   float64
	Interne float64
	Sage    float64
	Total   float64
}

func yearOf(m int) int {
	switch {
	case m < 12:
		return 1
	case m < 24:
		return 2
	default:
		return 3
	}
}

// Occupancy returns the occupancy fraction of month m (0-based) for a practice
// opening in month start (1-based) with a year-1 target fraction.
//
// Year 1 ramps linearly over RampMonths, year 2 recovers Year2Recovery of the
// remaining gap, year 3 runs at full capacity.
func Occupancy(m, start int, target float64, c Constants) float64 {
	if m < start-1 {
		return 0
	}
	switch yearOf(m) {
	case 1:
		sinceStart := m - (start - 1)
		return math.Min(target, target*math.Min(1, float64(sinceStart+1)/c.RampMonths))
	case 2:
		return math.Min(1, target+(1-target)*c.Year2Recovery)
	default:
		return 1
	}
}

// SplitRevenue computes the practice revenue of one month. Partners and
// independents contribute retro of their billings; salaried doctors bill for the
// practice in full. The midwife contribution is flat whenever the practice is open.
func SplitRevenue(monthlyPerSpec float64, team Team, occ, retro float64, c Constants) RevenueSplit {
	s := RevenueSplit{
		Assoc:   monthlyPerSpec * team.Assoc * occ * retro,
		Indep:   monthlyPerSpec * team.Indep * occ * retro,
		Interne: monthlyPerSpec * team.Interne * occ,
	}
	if occ > 0 {
		s.Sage = c.MidwifeMonthlyRevenue
	}
	s.Total = s.Assoc + s.Indep + s.Interne + s.Sage
	return s
}

// MonthlyCosts returns the signed running costs of one month: admin and opex
// bases scaled by team size relative to the reference team and by occupancy,
// plus one twelfth of the annual extra charges and liability insurance.
func MonthlyCosts(teamSize, occ, extra, rc float64, c Constants) float64 {
	delta := teamSize - c.ReferenceTeamSize
	admin := c.AdminBaseMonthly * (1 + delta*c.AdminScaleFactor)
	opex := c.OpexBaseMonthly * (1 + delta*c.OpexScaleFactor)
	return -(math.Abs(admin)+math.Abs(opex))*occ - (extra+rc)/12
}

// SalariedCompensation is the pay of salaried doctors for one month; zero while
// the practice is closed.
func SalariedCompensation(monthlyPerSpec, interne, occ float64, c Constants) float64 {
	if occ <= 0 {
		return 0
	}
	return monthlyPerSpec * interne * occ * c.SalariedCompensationRate
}

// MonthlyRevenuePerSpecialist is the billing capacity of one doctor per month.
func MonthlyRevenuePerSpecialist(consult, fee, days float64) float64 {
	return consult * fee * days / 12
}
