package dataset

import "time"

type User struct {
	UserID           string
	Username         string
	Email            string
	Country          string
	RegistrationDate time.Time
	Status           string
	IsPremium        bool
	DateOfBirth      time.Time
	DeviceType       string
	LastLoginTime    time.Time
}

type Product struct {
	ProductID      string
	SKU            string
	Category       string
	Brand          string
	Title          string
	Description    string
	Price          float64
	Weight         float64
	Tags           string
	Dimensions     string
	OriginCountry  string
	AvailableSince time.Time
	Rating         float64
	IsActive       bool
}

type Warehouse struct {
	WarehouseID           string
	Region                string
	ManagerName           string
	Capacity              int64
	LastAudit             time.Time
	IsAutomated           bool
	TemperatureControlled bool
	Timezone              string
	OperationalHours      string
}

type Order struct {
	OrderID         string
	UserID          string
	OrderDate       time.Time
	ShippingAddress string
	OrderTotal      float64
	PaymentMethod   string
	DiscountCode    *string
	DeliveryWindow  string
	OrderStatus     string
}

type OrderItem struct {
	ItemID            string
	OrderID           string
	ProductID         string
	Quantity          int64
	UnitPrice         float64
	DiscountAmount    float64
	FulfillmentCenter string
	BatchID           string
	IsGiftWrapped     bool
}

type InventorySnapshot struct {
	SnapshotID           string
	ProductID            string
	WarehouseID          string
	RecordedAt           time.Time
	AvailableStock       int64
	ReservedStock        int64
	SafetyStockThreshold int64
}

type SupportTicket struct {
	TicketID         string
	UserID           string
	OrderID          string
	IssueType        string
	Description      string
	CreatedAt        time.Time
	ResolvedAt       *time.Time
	SupportAgent     string
	ResolutionStatus string
	FeedbackScore    int64
}
