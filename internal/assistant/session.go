package assistant

import (
	"strconv"
	"time"

	"github.com/spec-kit/hrms-service/internal/domain"
)

// session carries the per-dispatch state: who asked, who the answer is
// about, and the organization-local clock.
type session struct {
	actor   *domain.User
	subject *domain.User
	query   string
	loc     *time.Location
	now     time.Time
}

// aboutSelf reports whether the answer concerns the asking user.
func (s *session) aboutSelf() bool {
	return s.subject == nil || s.actor == nil || s.subject.ID == s.actor.ID
}

// who phrases the subject for sentence starts: "You have" vs "Jane has".
func (s *session) who(selfForm, otherForm string) string {
	if s.aboutSelf() {
		return "You " + selfForm
	}
	return s.subject.FullName + " " + otherForm
}

// poss phrases the possessive subject: "Your" vs "Jane's".
func (s *session) poss() string {
	if s.aboutSelf() {
		return "Your"
	}
	return s.subject.FullName + "'s"
}

// today returns midnight of the current organization-local day.
func (s *session) today() time.Time {
	return dayStart(s.now, s.loc)
}

func dayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func formatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("1/2/2006")
}

func formatTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("03:04 PM")
}

// formatAmount renders money the shortest exact way: 1000 not 1000.00,
// 1234.5 not 1234.50.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
