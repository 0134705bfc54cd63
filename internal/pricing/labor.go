package pricing

// LaborCost is the cost of hours worked at an hourly rate.
func LaborCost(hours, hourlyRate float64) float64 {
	return hours * hourlyRate
}
