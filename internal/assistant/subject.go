package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
)

// subjectPattern captures the clause that redirects a query at another
// staff member: an email address or a free-text name after "for".
var subjectPattern = regexp.MustCompile(`(?i)for ([A-Za-z .'\-]+@[\w.\-]+|[A-Za-z .'\-]+)`)

var allStaffPattern = regexp.MustCompile(`(?i)all staff`)

// resolveSubject rewrites the session subject when an admin query carries a
// "for <someone>" clause. The returned reply is non-nil for terminal
// outcomes (unknown or ambiguous names), which end the dispatch without
// running the matched intent. A nil, nil return means the subject stands:
// either no clause was present or it named a period keyword instead of a
// person.
func (d *Dispatcher) resolveSubject(ctx context.Context, s *session) (*Reply, error) {
	match := subjectPattern.FindStringSubmatch(s.query)
	if match == nil {
		return nil, nil
	}
	candidate := strings.TrimSpace(match[1])
	if candidate == "" {
		return nil, nil
	}

	// "for June", "for all staff" and the like are not people.
	if _, ok := monthNumber(candidate); ok {
		return nil, nil
	}
	if allStaffPattern.MatchString(candidate) {
		return nil, nil
	}

	if strings.Contains(candidate, "@") {
		user, err := d.stores.Users.GetByEmailInOrg(ctx, s.actor.OrganizationID, candidate)
		if err != nil {
			if err == pgx.ErrNoRows {
				return &Reply{Answer: fmt.Sprintf("No staff found with %s.", candidate)}, nil
			}
			return nil, err
		}
		s.subject = user
		return nil, nil
	}

	matches, err := d.stores.Users.SearchByNameInOrg(ctx, s.actor.OrganizationID, candidate)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return &Reply{Answer: fmt.Sprintf("No staff found with %s.", candidate)}, nil
	case 1:
		s.subject = &matches[0]
		return nil, nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.FullName
		}
		return &Reply{Answer: fmt.Sprintf(
			"Multiple staff found matching '%s': %s. Please specify the full name or email.",
			candidate, strings.Join(names, ", "),
		)}, nil
	}
}
