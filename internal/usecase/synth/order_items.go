package synth

import (
	"context"
	"fmt"

	"fakedata/internal/domain/dataset"
)

// OrderItems samples order_id and product_id independently. An item's product
// is not required to make sense for the sampled order.
func (b *Builder) OrderItems(_ context.Context, n int, orderIDs []string, productIDs []string) ([]dataset.OrderItem, error) {
	if err := requireKeys(n,
		keyColumn{name: "orders.order_id", keys: orderIDs},
		keyColumn{name: "products.product_id", keys: productIDs},
	); err != nil {
		return nil, err
	}

	items := make([]dataset.OrderItem, 0, max(n, 0))
	for i := 0; i < n; i++ {
		items = append(items, dataset.OrderItem{
			ItemID:            b.fields.ID(),
			OrderID:           b.fields.Sample(orderIDs),
			ProductID:         b.fields.Sample(productIDs),
			Quantity:          b.fields.IntIn(dataset.ItemQuantity),
			UnitPrice:         b.fields.FloatIn(dataset.ItemUnitPrice),
			DiscountAmount:    b.fields.FloatIn(dataset.ItemDiscountAmount),
			FulfillmentCenter: fmt.Sprintf("FC-%d", b.fields.IntIn(dataset.FulfillmentCenter)),
			BatchID:           b.fields.Pattern(dataset.BatchPattern),
			IsGiftWrapped:     b.fields.Bool(),
		})
	}
	return items, nil
}
