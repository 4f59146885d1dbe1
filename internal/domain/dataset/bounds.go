package dataset

import "math"

type FloatBound struct {
	Lo        float64
	Hi        float64
	Precision int
}

func (b FloatBound) Contains(v float64) bool {
	return v >= b.Lo && v <= b.Hi
}

// Rounded reports whether v carries no more than Precision decimal places.
func (b FloatBound) Rounded(v float64) bool {
	scale := math.Pow(10, float64(b.Precision))
	return math.Abs(v*scale-math.Round(v*scale)) < 1e-6
}

type IntBound struct {
	Lo int
	Hi int
}

func (b IntBound) Contains(v int64) bool {
	return v >= int64(b.Lo) && v <= int64(b.Hi)
}

var (
	ProductPrice         = FloatBound{Lo: 10, Hi: 500, Precision: 2}
	ProductWeight        = FloatBound{Lo: 0.1, Hi: 5.0, Precision: 2}
	ProductRating        = FloatBound{Lo: 1.0, Hi: 5.0, Precision: 1}
	OrderTotal           = FloatBound{Lo: 20, Hi: 1000, Precision: 2}
	ItemUnitPrice        = FloatBound{Lo: 10, Hi: 500, Precision: 2}
	ItemDiscountAmount   = FloatBound{Lo: 0, Hi: 50, Precision: 2}
	WarehouseCapacity    = IntBound{Lo: 5000, Hi: 100000}
	ItemQuantity         = IntBound{Lo: 1, Hi: 5}
	FulfillmentCenter    = IntBound{Lo: 100, Hi: 999}
	AvailableStock       = IntBound{Lo: 0, Hi: 500}
	ReservedStock        = IntBound{Lo: 0, Hi: 200}
	SafetyStockThreshold = IntBound{Lo: 10, Hi: 100}
	FeedbackScore        = IntBound{Lo: 1, Hi: 5}
	DimensionLength      = IntBound{Lo: 5, Hi: 30}
	DimensionWidth       = IntBound{Lo: 5, Hi: 30}
	DimensionHeight      = IntBound{Lo: 1, Hi: 20}
	CustomerAge          = IntBound{Lo: 18, Hi: 70}
)
