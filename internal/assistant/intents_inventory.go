package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

func handleAssignedInventory(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	items, err := d.stores.Inventory.ListAssignedTo(ctx, s.actor.OrganizationID, s.subject.ID)
	if err != nil {
		return Reply{}, err
	}
	if len(items) == 0 {
		return Reply{Answer: s.who("have", "has") + " no inventory assigned."}, nil
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%s (Code: %s, Serial: %s)", item.Name, item.ItemCode, item.SerialNumber)
	}
	return Reply{Answer: s.poss() + " assigned inventory:\n" + strings.Join(lines, "\n")}, nil
}

var availabilityPattern = regexp.MustCompile(`(?i)total (items )?available for ([\w .'-]+)`)

func handleItemAvailability(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	match := availabilityPattern.FindStringSubmatch(s.query)
	if match == nil {
		return fallbackReply(), nil
	}
	item := strings.TrimSpace(match[2])

	items, err := d.stores.Inventory.SearchByName(ctx, s.actor.OrganizationID, item)
	if err != nil {
		return Reply{}, err
	}
	if len(items) == 0 {
		return Reply{Answer: fmt.Sprintf("No inventory items found matching '%s'.", item)}, nil
	}
	total := 0
	for _, i := range items {
		total += i.Quantity
	}
	return Reply{Answer: fmt.Sprintf("Total available for '%s': %d", item, total)}, nil
}

func handleNewInventoryRequests(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	requests, err := d.stores.Inventory.ListPendingRequests(ctx, s.actor.OrganizationID, 10)
	if err != nil {
		return Reply{}, err
	}
	if len(requests) == 0 {
		return Reply{Answer: "No new inventory requests."}, nil
	}
	lines := make([]string, len(requests))
	for i, r := range requests {
		requester := r.StaffFullName
		if requester == "" {
			requester = "Unknown"
		}
		lines[i] = fmt.Sprintf("%s (%d) by %s", r.ItemName, r.Quantity, requester)
	}
	return Reply{Answer: "New inventory requests:\n" + strings.Join(lines, "\n")}, nil
}

func handleInventorySummary(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	totals, err := d.stores.Inventory.SummaryByName(ctx, s.actor.OrganizationID)
	if err != nil {
		return Reply{}, err
	}
	if len(totals) == 0 {
		return Reply{Answer: "No inventory items found."}, nil
	}
	lines := make([]string, len(totals))
	for i, t := range totals {
		lines[i] = fmt.Sprintf("%s: %d", t.Name, t.Quantity)
	}
	return Reply{Answer: "Inventory summary:\n" + strings.Join(lines, "\n")}, nil
}
