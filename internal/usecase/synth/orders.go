package synth

import (
	"context"

	"fakedata/internal/domain/dataset"
)

// Orders samples user_id from userIDs with replacement.
func (b *Builder) Orders(_ context.Context, n int, userIDs []string) ([]dataset.Order, error) {
	if err := requireKeys(n, keyColumn{name: "users.user_id", keys: userIDs}); err != nil {
		return nil, err
	}

	orders := make([]dataset.Order, 0, max(n, 0))
	for i := 0; i < n; i++ {
		orders = append(orders, dataset.Order{
			OrderID:         b.fields.ID(),
			UserID:          b.fields.Sample(userIDs),
			OrderDate:       b.fields.TimeThisYear(),
			ShippingAddress: b.fields.Address(),
			OrderTotal:      b.fields.FloatIn(dataset.OrderTotal),
			PaymentMethod:   b.fields.Choice(dataset.PaymentMethods),
			DiscountCode:    b.fields.OptionalChoice(dataset.DiscountCodes),
			DeliveryWindow:  b.fields.Choice(dataset.DeliveryWindows),
			OrderStatus:     b.fields.Choice(dataset.OrderStatuses),
		})
	}
	return orders, nil
}
