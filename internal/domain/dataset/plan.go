package dataset

import (
	"fmt"
)

const (
	TableUsers              = "users"
	TableProducts           = "products"
	TableWarehouses         = "warehouses"
	TableOrders             = "orders"
	TableOrderItems         = "order_items"
	TableInventorySnapshots = "inventory_snapshots"
	TableSupportTickets     = "support_tickets"
)

type PlanStep struct {
	Table   string
	Parents []string
}

// Plan is the fixed generation order. Every parent appears before its children.
var Plan = []PlanStep{
	{Table: TableUsers},
	{Table: TableProducts},
	{Table: TableWarehouses},
	{Table: TableOrders, Parents: []string{TableUsers}},
	{Table: TableOrderItems, Parents: []string{TableOrders, TableProducts}},
	{Table: TableInventorySnapshots, Parents: []string{TableProducts, TableWarehouses}},
	{Table: TableSupportTickets, Parents: []string{TableUsers, TableOrders}},
}

type Counts struct {
	Users              int `mapstructure:"users"`
	Products           int `mapstructure:"products"`
	Warehouses         int `mapstructure:"warehouses"`
	Orders             int `mapstructure:"orders"`
	OrderItems         int `mapstructure:"order_items"`
	InventorySnapshots int `mapstructure:"inventory_snapshots"`
	SupportTickets     int `mapstructure:"support_tickets"`
}

func DefaultCounts() Counts {
	return Counts{
		Users:              1050,
		Products:           500,
		Warehouses:         30,
		Orders:             3000,
		OrderItems:         6000,
		InventorySnapshots: 1500,
		SupportTickets:     800,
	}
}

func (c Counts) For(table string) (int, error) {
	switch table {
	case TableUsers:
		return c.Users, nil
	case TableProducts:
		return c.Products, nil
	case TableWarehouses:
		return c.Warehouses, nil
	case TableOrders:
		return c.Orders, nil
	case TableOrderItems:
		return c.OrderItems, nil
	case TableInventorySnapshots:
		return c.InventorySnapshots, nil
	case TableSupportTickets:
		return c.SupportTickets, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
}

func (c Counts) Validate() error {
	for _, step := range Plan {
		n, err := c.For(step.Table)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("%w: %s=%d", ErrNegativeRowCount, step.Table, n)
		}
	}
	return nil
}

func (c Counts) Total() int {
	total := 0
	for _, step := range Plan {
		n, _ := c.For(step.Table)
		total += n
	}
	return total
}
