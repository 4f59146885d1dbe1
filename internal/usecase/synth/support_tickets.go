package synth

import (
	"context"
	"time"

	"fakedata/internal/domain/dataset"
)

const (
	issueTypeFallback         = "Delivery issue"
	ticketDescriptionTokens   = 128
	ticketDescriptionFallback = "Order not delivered on time."
)

// SupportTickets samples user_id and order_id independently. The description
// prompt embeds the issue type chosen for the same ticket.
func (b *Builder) SupportTickets(ctx context.Context, n int, userIDs []string, orderIDs []string) ([]dataset.SupportTicket, error) {
	if err := requireKeys(n,
		keyColumn{name: "users.user_id", keys: userIDs},
		keyColumn{name: "orders.order_id", keys: orderIDs},
	); err != nil {
		return nil, err
	}

	tickets := make([]dataset.SupportTicket, 0, max(n, 0))
	for i := 0; i < n; i++ {
		issueType := b.enrich(ctx, "Generate a short support issue type", defaultMaxOutputTokens, issueTypeFallback)
		description := b.enrich(ctx,
			"Write a support ticket description for issue: "+issueType,
			ticketDescriptionTokens,
			ticketDescriptionFallback,
		)

		var resolvedAt *time.Time
		if b.fields.Chance(dataset.ResolvedProbability) {
			ts := b.fields.TimeThisYear()
			resolvedAt = &ts
		}

		tickets = append(tickets, dataset.SupportTicket{
			TicketID:         b.fields.ID(),
			UserID:           b.fields.Sample(userIDs),
			OrderID:          b.fields.Sample(orderIDs),
			IssueType:        issueType,
			Description:      description,
			CreatedAt:        b.fields.TimeThisYear(),
			ResolvedAt:       resolvedAt,
			SupportAgent:     b.fields.FirstName(),
			ResolutionStatus: b.fields.Choice(dataset.ResolutionStatuses),
			FeedbackScore:    b.fields.IntIn(dataset.FeedbackScore),
		})
	}
	return tickets, nil
}
