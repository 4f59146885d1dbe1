package dataset

// Value pools for enum-like columns.

var DeviceTypes = []string{"mobile", "desktop", "tablet"}

var ProductCategories = []string{"electronics", "fashion", "home", "sports", "beauty"}

var ProductBrands = []string{
	"Apple", "Samsung", "Nike", "Adidas", "IKEA",
	"Under Armour", "L'Oréal", "Revlon", "Sony", "H&M",
}

var WarehouseRegions = []string{"North", "South", "East", "West"}

var WarehouseTimezones = []string{"UTC", "EST", "PST", "CET"}

const WarehouseOperationalHours = "08:00-20:00"

var PaymentMethods = []string{"credit_card", "paypal", "upi", "net_banking"}

// DiscountCodes is sampled together with a null outcome of equal weight.
var DiscountCodes = []string{"SAVE10", "WELCOME50", "FREESHIP"}

var DeliveryWindows = []string{"Morning", "Evening", "Afternoon"}

var OrderStatuses = []string{"pending", "shipped", "delivered", "cancelled"}

var ResolutionStatuses = []string{"Resolved", "Pending", "Escalated"}

const (
	SKUPattern   = "SKU-#######"
	BatchPattern = "BATCH-#####"
)

// ResolvedProbability is the share of support tickets carrying resolved_at.
const ResolvedProbability = 0.7
