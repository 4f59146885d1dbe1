package synth

import (
	"context"

	"fakedata/internal/domain/dataset"
)

func (b *Builder) InventorySnapshots(_ context.Context, n int, productIDs []string, warehouseIDs []string) ([]dataset.InventorySnapshot, error) {
	if err := requireKeys(n,
		keyColumn{name: "products.product_id", keys: productIDs},
		keyColumn{name: "warehouses.warehouse_id", keys: warehouseIDs},
	); err != nil {
		return nil, err
	}

	snapshots := make([]dataset.InventorySnapshot, 0, max(n, 0))
	for i := 0; i < n; i++ {
		snapshots = append(snapshots, dataset.InventorySnapshot{
			SnapshotID:           b.fields.ID(),
			ProductID:            b.fields.Sample(productIDs),
			WarehouseID:          b.fields.Sample(warehouseIDs),
			RecordedAt:           b.fields.TimeThisYear(),
			AvailableStock:       b.fields.IntIn(dataset.AvailableStock),
			ReservedStock:        b.fields.IntIn(dataset.ReservedStock),
			SafetyStockThreshold: b.fields.IntIn(dataset.SafetyStockThreshold),
		})
	}
	return snapshots, nil
}
