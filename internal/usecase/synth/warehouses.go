package synth

import (
	"context"

	"fakedata/internal/domain/dataset"
)

func (b *Builder) Warehouses(_ context.Context, n int) []dataset.Warehouse {
	warehouses := make([]dataset.Warehouse, 0, max(n, 0))
	for i := 0; i < n; i++ {
		warehouses = append(warehouses, dataset.Warehouse{
			WarehouseID:           b.fields.ID(),
			Region:                b.fields.Choice(dataset.WarehouseRegions),
			ManagerName:           b.fields.PersonName(),
			Capacity:              b.fields.IntIn(dataset.WarehouseCapacity),
			LastAudit:             b.fields.TimeThisYear(),
			IsAutomated:           b.fields.Bool(),
			TemperatureControlled: b.fields.Bool(),
			Timezone:              b.fields.Choice(dataset.WarehouseTimezones),
			OperationalHours:      dataset.WarehouseOperationalHours,
		})
	}
	return warehouses
}
