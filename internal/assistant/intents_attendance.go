package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

func handleClockInToday(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	today := s.today()
	tomorrow := today.AddDate(0, 0, 1)

	record, err := d.stores.Attendance.LatestForUserBetween(ctx, s.subject.ID, today, tomorrow)
	if err != nil && err != pgx.ErrNoRows {
		return Reply{}, err
	}

	actions := []Action{
		{Label: "Show my last 7 days' attendance", Query: "Show me my last 7 days' attendance."},
		{Label: "Do I have any missed check-ins this week?", Query: "Do I have any missed check-ins this week?"},
	}
	if record != nil && record.CheckIn != nil {
		return Reply{
			Answer:  fmt.Sprintf("You clocked in today at %s.", formatTime(*record.CheckIn, s.loc)),
			Actions: actions,
		}, nil
	}
	return Reply{Answer: "You have not clocked in today.", Actions: actions}, nil
}

func handleLastSevenDays(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	today := s.today()
	first := today.AddDate(0, 0, -6)

	records, err := d.stores.Attendance.ListForUserBetween(ctx, s.subject.ID, first, today)
	if err != nil {
		return Reply{}, err
	}

	present := make(map[string]bool, len(records))
	for _, r := range records {
		present[dayStart(r.Date, s.loc).Format("2006-01-02")] = true
	}

	week := make([]string, 0, 7)
	for day := first; !day.After(today); day = day.AddDate(0, 0, 1) {
		status := "Absent"
		if present[day.Format("2006-01-02")] {
			status = "Present"
		}
		week = append(week, fmt.Sprintf("%s: %s", day.Format("Mon"), status))
	}

	return Reply{
		Answer: "Here's your attendance for the last 7 days:\n" + strings.Join(week, " "),
		Actions: []Action{
			{Label: "Do I have any missed check-ins this week?", Query: "Do I have any missed check-ins this week?"},
		},
	}, nil
}

func handleMissedCheckIns(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	today := s.today()
	monday := today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))

	records, err := d.stores.Attendance.ListForUserBetween(ctx, s.subject.ID, monday, today)
	if err != nil {
		return Reply{}, err
	}

	checkedIn := make(map[string]bool, len(records))
	for _, r := range records {
		checkedIn[dayStart(r.Date, s.loc).Format("2006-01-02")] = true
	}

	missed := 0
	for day := monday; !day.After(today); day = day.AddDate(0, 0, 1) {
		if !checkedIn[day.Format("2006-01-02")] {
			missed++
		}
	}

	answer := "You have no missed check-ins this week!"
	if missed > 0 {
		suffix := ""
		if missed > 1 {
			suffix = "s"
		}
		answer = fmt.Sprintf("You have %d missed check-in%s this week.", missed, suffix)
	}
	return Reply{
		Answer: answer,
		Actions: []Action{
			{Label: "Show my last 7 days' attendance", Query: "Show me my last 7 days' attendance."},
		},
	}, nil
}

func handlePresentToday(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	today := s.today()
	records, err := d.stores.Attendance.ListForOrgBetween(ctx, s.actor.OrganizationID, today, today.AddDate(0, 0, 1))
	if err != nil {
		return Reply{}, err
	}
	if len(records) == 0 {
		return Reply{Answer: "No staff present today."}, nil
	}
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.UserFullName
	}
	return Reply{Answer: "Present today: " + strings.Join(names, ", ")}, nil
}

func handleAbsentToday(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	today := s.today()
	presentIDs, err := d.stores.Attendance.DistinctPresentUserIDs(ctx, s.actor.OrganizationID, today, today.AddDate(0, 0, 1))
	if err != nil {
		return Reply{}, err
	}
	absent, err := d.stores.Users.ListActiveExcluding(ctx, s.actor.OrganizationID, presentIDs)
	if err != nil {
		return Reply{}, err
	}
	if len(absent) == 0 {
		return Reply{Answer: "No staff absent today."}, nil
	}
	names := make([]string, len(absent))
	for i, u := range absent {
		names[i] = u.FullName
	}
	return Reply{Answer: "Absent today: " + strings.Join(names, ", ")}, nil
}
