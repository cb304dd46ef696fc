package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/repository"
)

func handleUpcomingTraining(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	now := s.now
	upcoming, err := d.stores.Training.List(ctx, repository.TrainingFilter{
		StaffID:       s.subject.ID,
		Statuses:      []string{domain.TrainingStatusApproved, domain.TrainingStatusPending},
		RequestedFrom: &now,
		SortAscending: true,
		Limit:         1,
	})
	if err != nil {
		return Reply{}, err
	}
	if len(upcoming) == 0 {
		return Reply{Answer: s.who("have", "has") + " no upcoming training sessions."}, nil
	}

	t := upcoming[0]
	lead := "Your next training session is"
	if !s.aboutSelf() {
		lead = s.subject.FullName + "'s next training session is"
	}
	return Reply{Answer: fmt.Sprintf("%s %q on %s.", lead, t.TrainingTitle, formatDate(t.RequestedDate, s.loc))}, nil
}

func handleTrainingHistory(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	trainings, err := d.stores.Training.List(ctx, repository.TrainingFilter{StaffID: s.subject.ID, Limit: 5})
	if err != nil {
		return Reply{}, err
	}
	if len(trainings) == 0 {
		return Reply{Answer: s.who("have", "has") + " no training sessions."}, nil
	}
	lines := make([]string, len(trainings))
	for i, t := range trainings {
		lines[i] = fmt.Sprintf("%s (%s) on %s", t.TrainingTitle, t.Status, formatDate(t.RequestedDate, s.loc))
	}
	return Reply{Answer: s.poss() + " recent training sessions:\n" + strings.Join(lines, "\n")}, nil
}

func handleApprovedTraining(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	trainings, err := d.stores.Training.List(ctx, repository.TrainingFilter{
		StaffID:  s.subject.ID,
		Statuses: []string{domain.TrainingStatusApproved},
		Limit:    5,
	})
	if err != nil {
		return Reply{}, err
	}
	if len(trainings) == 0 {
		return Reply{Answer: s.who("have", "has") + " no approved training sessions."}, nil
	}
	lines := make([]string, len(trainings))
	for i, t := range trainings {
		lines[i] = fmt.Sprintf("%s on %s", t.TrainingTitle, formatDate(t.RequestedDate, s.loc))
	}
	return Reply{Answer: s.poss() + " approved training sessions:\n" + strings.Join(lines, "\n")}, nil
}

func handleTrainingRequests(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	trainings, err := d.stores.Training.List(ctx, repository.TrainingFilter{StaffID: s.subject.ID, Limit: 10})
	if err != nil {
		return Reply{}, err
	}
	if len(trainings) == 0 {
		return Reply{Answer: s.who("have", "has") + " no training requests."}, nil
	}
	lines := make([]string, len(trainings))
	for i, t := range trainings {
		lines[i] = fmt.Sprintf("%s (%s) on %s", t.TrainingTitle, t.Status, formatDate(t.RequestedDate, s.loc))
	}
	return Reply{Answer: s.poss() + " training requests:\n" + strings.Join(lines, "\n")}, nil
}

func handleTrainingCosts(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	costs, count, err := d.stores.Training.AggregateApprovedCosts(ctx, s.actor.OrganizationID)
	if err != nil {
		return Reply{}, err
	}
	if count == 0 {
		return Reply{Answer: "No approved training costs found."}, nil
	}
	answer := fmt.Sprintf(
		"Total training costs (approved):\nRegistration: %s\nTravel: %s\nAccommodation: %s\nMeals: %s\nOther: %s\nTotal: %s",
		formatAmount(costs.RegistrationFee), formatAmount(costs.TravelCost),
		formatAmount(costs.AccommodationCost), formatAmount(costs.MealCost),
		formatAmount(costs.OtherCost), formatAmount(costs.Total()),
	)
	return Reply{Answer: answer}, nil
}
