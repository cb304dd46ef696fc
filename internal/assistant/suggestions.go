package assistant

import (
	"regexp"
	"strings"

	"github.com/spec-kit/hrms-service/internal/domain"
)

var (
	samplesPattern = regexp.MustCompile(`(?i)sample questions|example questions|help`)
	howToPattern   = regexp.MustCompile(`(?i)how to use ask ai`)

	chipLeave     = regexp.MustCompile(`(?i)leave`)
	chipPayroll   = regexp.MustCompile(`(?i)payroll|salary|payslip`)
	chipInventory = regexp.MustCompile(`(?i)inventory`)
	chipExpense   = regexp.MustCompile(`(?i)expense|claim`)
	chipTask      = regexp.MustCompile(`(?i)task`)
	chipTraining  = regexp.MustCompile(`(?i)training`)
)

const sampleQuestionsAnswer = "Sample questions you can ask:\n" +
	"- Show my pending expense claims\n" +
	"- Show approved expense claims for John Doe\n" +
	"- Show rejected expense claims for Jane Smith\n" +
	"- Show my expense report\n" +
	"- Show inventory assigned to me\n" +
	"- Show inventory assigned to John Doe\n" +
	"- Total items available for Laptop\n" +
	"- Any new inventory requests?\n" +
	"- Show inventory summary\n" +
	"- Show inventory report"

const howToAnswer = "**How to use Ask AI (Admin Guide)**\n\n" +
	"- You can ask about any staff by name or email, e.g. 'Show approved leave for John Doe'.\n" +
	"- Use keywords like 'approved leave', 'pending leave', 'inventory', 'payslip', 'payroll summary', 'expense claims', 'tasks', 'training', etc.\n" +
	"- Use [staff] and [month] placeholders in your queries.\n" +
	"- Click on suggestion chips below the chat to auto-fill queries.\n" +
	"- Click 'Show Examples' for more sample questions.\n\n" +
	"**Sample Queries:**\n" +
	"- Show approved leave for John Doe\n" +
	"- Download payslip PDF for Jane Smith for June 2025\n" +
	"- Show inventory assigned to Ahmed Ali\n" +
	"- Show pending expense claims for Amira Aldass\n" +
	"- Show tasks for Ana Russo\n" +
	"- Show approved training for Ahmed Ali"

var showExamplesAction = Action{Label: "Show Examples", Query: "Show me example questions"}

// postProcess applies the answer overrides and suggestion chips layered on
// top of whatever the matched intent produced. Order matters and follows
// the client contract: sample-questions override first, then admin chips
// keyed on query vocabulary, then the admin how-to guide (which replaces
// everything), and finally the Show Examples chip on the apology fallback.
func (d *Dispatcher) postProcess(actor *domain.User, query string, reply Reply) (Reply, error) {
	if samplesPattern.MatchString(query) {
		reply.Answer = sampleQuestionsAnswer
		reply.Actions = nil
	}

	if actor.IsAdmin() {
		if chipLeave.MatchString(query) {
			reply.Actions = append(reply.Actions,
				Action{Label: "Show approved leave for [staff]", Query: "Show approved leave for "},
				Action{Label: "Show pending leave for [staff]", Query: "Show pending leave for "},
				Action{Label: "Show leave tracker for [staff]", Query: "Show leave tracker for "},
			)
		}
		if chipPayroll.MatchString(query) {
			reply.Actions = append(reply.Actions,
				Action{Label: "Download payslip PDF for [staff] for [month]", Query: "Download payslip PDF for  for "},
				Action{Label: "Show payroll summary for [month]", Query: "Payroll summary for "},
				Action{Label: "Who has the highest salary?", Query: "Who has the highest salary?"},
			)
		}
		if chipInventory.MatchString(query) {
			reply.Actions = append(reply.Actions,
				Action{Label: "Show inventory assigned to [staff]", Query: "Show inventory assigned to "},
				Action{Label: "Total items available for [item]", Query: "Total items available for "},
				Action{Label: "Any new inventory requests?", Query: "Any new inventory requests?"},
			)
		}
		if chipExpense.MatchString(query) {
			reply.Actions = append(reply.Actions,
				Action{Label: "Show pending expense claims for [staff]", Query: "Show pending expense claims for "},
				Action{Label: "Show approved expense claims for [staff]", Query: "Show approved expense claims for "},
				Action{Label: "Show expense report for [staff]", Query: "Show expense report for "},
			)
		}
		if chipTask.MatchString(query) {
			reply.Actions = append(reply.Actions,
				Action{Label: "Show tasks for [staff]", Query: "Show tasks for "},
				Action{Label: "Show all staff tasks", Query: "Show all staff tasks"},
			)
		}
		if chipTraining.MatchString(query) {
			reply.Actions = append(reply.Actions,
				Action{Label: "Show approved training for [staff]", Query: "Show approved training for "},
				Action{Label: "Show training requests for [staff]", Query: "Show training requests for "},
			)
		}
	}

	if howToPattern.MatchString(query) {
		return Reply{Answer: howToAnswer, Actions: []Action{showExamplesAction}}, nil
	}

	if strings.HasPrefix(reply.Answer, "Sorry, I'm not sure") {
		reply.Actions = append(reply.Actions, showExamplesAction)
	}
	return reply, nil
}
