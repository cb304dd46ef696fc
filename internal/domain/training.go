package domain

import "time"

// Training request status vocabulary.
const (
	TrainingStatusPending  = "Pending"
	TrainingStatusApproved = "Approved"
	TrainingStatusRejected = "Rejected"
)

// TrainingCosts itemizes the cost breakdown of one training request.
type TrainingCosts struct {
	RegistrationFee   float64
	TravelCost        float64
	AccommodationCost float64
	MealCost          float64
	OtherCost         float64
}

// Total sums all cost components.
func (c TrainingCosts) Total() float64 {
	return c.RegistrationFee + c.TravelCost + c.AccommodationCost + c.MealCost + c.OtherCost
}

// TrainingRequest models a staff training application.
type TrainingRequest struct {
	ID             string
	StaffID        string
	OrganizationID string
	TrainingTitle  string
	RequestedDate  time.Time
	Status         string
	Costs          TrainingCosts
}
