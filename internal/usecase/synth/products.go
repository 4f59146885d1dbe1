package synth

import (
	"context"
	"fmt"
	"strings"

	"fakedata/internal/domain/dataset"
)

const (
	productTitleTokens         = 32
	productDescriptionFallback = "High-quality product"
)

func productTitleFallback(brand, category string) string {
	return fmt.Sprintf("%s %s item", brand, category)
}

func (b *Builder) Products(ctx context.Context, n int) []dataset.Product {
	products := make([]dataset.Product, 0, max(n, 0))
	for i := 0; i < n; i++ {
		category := b.fields.Choice(dataset.ProductCategories)
		brand := b.fields.Choice(dataset.ProductBrands)
		title := b.enrich(ctx,
			fmt.Sprintf("Generate an attractive product title for a %s item by %s", category, brand),
			productTitleTokens,
			productTitleFallback(brand, category),
		)
		description := b.enrich(ctx,
			"Write a short product description for: "+title,
			defaultMaxOutputTokens,
			productDescriptionFallback,
		)

		products = append(products, dataset.Product{
			ProductID:      b.fields.ID(),
			SKU:            b.fields.Pattern(dataset.SKUPattern),
			Category:       category,
			Brand:          brand,
			Title:          title,
			Description:    description,
			Price:          b.fields.FloatIn(dataset.ProductPrice),
			Weight:         b.fields.FloatIn(dataset.ProductWeight),
			Tags:           strings.Join(b.fields.Words(3), ","),
			Dimensions:     b.fields.Dimensions(dataset.DimensionLength, dataset.DimensionWidth, dataset.DimensionHeight),
			OriginCountry:  b.fields.Country(),
			AvailableSince: b.fields.DateThisDecade(),
			Rating:         b.fields.FloatIn(dataset.ProductRating),
			IsActive:       b.fields.Bool(),
		})
	}
	return products
}
