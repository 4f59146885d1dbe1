package dataset

import "time"

var userColumns = []Column{
	{Name: "user_id", Type: TypeString},
	{Name: "username", Type: TypeString},
	{Name: "email", Type: TypeString},
	{Name: "country", Type: TypeString},
	{Name: "registration_date", Type: TypeTimestamp},
	{Name: "status", Type: TypeString},
	{Name: "is_premium", Type: TypeBool},
	{Name: "date_of_birth", Type: TypeDate},
	{Name: "device_type", Type: TypeString},
	{Name: "last_login_time", Type: TypeTimestamp},
}

var productColumns = []Column{
	{Name: "product_id", Type: TypeString},
	{Name: "sku", Type: TypeString},
	{Name: "category", Type: TypeString},
	{Name: "brand", Type: TypeString},
	{Name: "title", Type: TypeString},
	{Name: "description", Type: TypeString},
	{Name: "price", Type: TypeFloat64},
	{Name: "weight", Type: TypeFloat64},
	{Name: "tags", Type: TypeString},
	{Name: "dimensions", Type: TypeString},
	{Name: "origin_country", Type: TypeString},
	{Name: "available_since", Type: TypeDate},
	{Name: "rating", Type: TypeFloat64},
	{Name: "is_active", Type: TypeBool},
}

var warehouseColumns = []Column{
	{Name: "warehouse_id", Type: TypeString},
	{Name: "region", Type: TypeString},
	{Name: "manager_name", Type: TypeString},
	{Name: "capacity", Type: TypeInt64},
	{Name: "last_audit", Type: TypeTimestamp},
	{Name: "is_automated", Type: TypeBool},
	{Name: "temperature_controlled", Type: TypeBool},
	{Name: "timezone", Type: TypeString},
	{Name: "operational_hours", Type: TypeString},
}

var orderColumns = []Column{
	{Name: "order_id", Type: TypeString},
	{Name: "user_id", Type: TypeString},
	{Name: "order_date", Type: TypeTimestamp},
	{Name: "shipping_address", Type: TypeString},
	{Name: "order_total", Type: TypeFloat64},
	{Name: "payment_method", Type: TypeString},
	{Name: "discount_code", Type: TypeString, Nullable: true},
	{Name: "delivery_window", Type: TypeString},
	{Name: "order_status", Type: TypeString},
}

var orderItemColumns = []Column{
	{Name: "item_id", Type: TypeString},
	{Name: "order_id", Type: TypeString},
	{Name: "product_id", Type: TypeString},
	{Name: "quantity", Type: TypeInt64},
	{Name: "unit_price", Type: TypeFloat64},
	{Name: "discount_amount", Type: TypeFloat64},
	{Name: "fulfillment_center", Type: TypeString},
	{Name: "batch_id", Type: TypeString},
	{Name: "is_gift_wrapped", Type: TypeBool},
}

var inventoryColumns = []Column{
	{Name: "snapshot_id", Type: TypeString},
	{Name: "product_id", Type: TypeString},
	{Name: "warehouse_id", Type: TypeString},
	{Name: "recorded_at", Type: TypeTimestamp},
	{Name: "available_stock", Type: TypeInt64},
	{Name: "reserved_stock", Type: TypeInt64},
	{Name: "safety_stock_threshold", Type: TypeInt64},
}

var supportTicketColumns = []Column{
	{Name: "ticket_id", Type: TypeString},
	{Name: "user_id", Type: TypeString},
	{Name: "order_id", Type: TypeString},
	{Name: "issue_type", Type: TypeString},
	{Name: "description", Type: TypeString},
	{Name: "created_at", Type: TypeTimestamp},
	{Name: "resolved_at", Type: TypeTimestamp, Nullable: true},
	{Name: "support_agent", Type: TypeString},
	{Name: "resolution_status", Type: TypeString},
	{Name: "feedback_score", Type: TypeInt64},
}

func newTable(name string, pk string, columns []Column, rows int) Table {
	cols := make([]Column, len(columns))
	copy(cols, columns)
	return Table{
		Name:       name,
		PrimaryKey: pk,
		Columns:    cols,
		Rows:       make([][]any, 0, rows),
	}
}

func UsersTable(users []User) Table {
	t := newTable(TableUsers, "user_id", userColumns, len(users))
	for _, u := range users {
		t.Rows = append(t.Rows, []any{
			u.UserID, u.Username, u.Email, u.Country, u.RegistrationDate, u.Status,
			u.IsPremium, u.DateOfBirth, u.DeviceType, u.LastLoginTime,
		})
	}
	return t
}

func ProductsTable(products []Product) Table {
	t := newTable(TableProducts, "product_id", productColumns, len(products))
	for _, p := range products {
		t.Rows = append(t.Rows, []any{
			p.ProductID, p.SKU, p.Category, p.Brand, p.Title, p.Description, p.Price,
			p.Weight, p.Tags, p.Dimensions, p.OriginCountry, p.AvailableSince, p.Rating,
			p.IsActive,
		})
	}
	return t
}

func WarehousesTable(warehouses []Warehouse) Table {
	t := newTable(TableWarehouses, "warehouse_id", warehouseColumns, len(warehouses))
	for _, w := range warehouses {
		t.Rows = append(t.Rows, []any{
			w.WarehouseID, w.Region, w.ManagerName, w.Capacity, w.LastAudit, w.IsAutomated,
			w.TemperatureControlled, w.Timezone, w.OperationalHours,
		})
	}
	return t
}

func OrdersTable(orders []Order) Table {
	t := newTable(TableOrders, "order_id", orderColumns, len(orders))
	for _, o := range orders {
		t.Rows = append(t.Rows, []any{
			o.OrderID, o.UserID, o.OrderDate, o.ShippingAddress, o.OrderTotal,
			o.PaymentMethod, nullableString(o.DiscountCode), o.DeliveryWindow, o.OrderStatus,
		})
	}
	return t
}

func OrderItemsTable(items []OrderItem) Table {
	t := newTable(TableOrderItems, "item_id", orderItemColumns, len(items))
	for _, it := range items {
		t.Rows = append(t.Rows, []any{
			it.ItemID, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice, it.DiscountAmount,
			it.FulfillmentCenter, it.BatchID, it.IsGiftWrapped,
		})
	}
	return t
}

func InventorySnapshotsTable(snapshots []InventorySnapshot) Table {
	t := newTable(TableInventorySnapshots, "snapshot_id", inventoryColumns, len(snapshots))
	for _, s := range snapshots {
		t.Rows = append(t.Rows, []any{
			s.SnapshotID, s.ProductID, s.WarehouseID, s.RecordedAt, s.AvailableStock,
			s.ReservedStock, s.SafetyStockThreshold,
		})
	}
	return t
}

func SupportTicketsTable(tickets []SupportTicket) Table {
	t := newTable(TableSupportTickets, "ticket_id", supportTicketColumns, len(tickets))
	for _, tk := range tickets {
		t.Rows = append(t.Rows, []any{
			tk.TicketID, tk.UserID, tk.OrderID, tk.IssueType, tk.Description, tk.CreatedAt,
			nullableTime(tk.ResolvedAt), tk.SupportAgent, tk.ResolutionStatus, tk.FeedbackScore,
		})
	}
	return t
}

func nullableString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return *v
}

func UserIDs(users []User) []string {
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.UserID)
	}
	return ids
}

func ProductIDs(products []Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ProductID)
	}
	return ids
}

func WarehouseIDs(warehouses []Warehouse) []string {
	ids := make([]string, 0, len(warehouses))
	for _, w := range warehouses {
		ids = append(ids, w.WarehouseID)
	}
	return ids
}

func OrderIDs(orders []Order) []string {
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.OrderID)
	}
	return ids
}
