package schema

const ProductSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront.catalog",
	"name": "product",
	"fields": [
		{"name": "product_id", "type": "string"},
		{"name": "name", "type": "string"},
		{"name": "sku", "type": "string", "default": ""},
		{"name": "brand", "type": "string", "default": ""},
		{"name": "category", "type": "string", "default": ""},
		{"name": "origin", "type": "string", "default": ""},
		{"name": "description", "type": "string", "default": ""},
		{"name": "price", "type": {
			"type": "record",
			"name": "product_price",
			"fields": [
				{"name": "amount", "type": "double"},
				{"name": "currency", "type": "string"}
			]
		}},
		{"name": "original_price", "type": "product_price"},
		{"name": "rating", "type": "double", "default": 0},
		{"name": "review_count", "type": "long", "default": 0},
		{"name": "badge", "type": "string", "default": ""},
		{"name": "available_stock", "type": "long", "default": 0},
		{"name": "images", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "product_image",
				"fields": [
					{"name": "url", "type": "string"},
					{"name": "alt", "type": "string", "default": ""}
				]
			}
		}, "default": []}
	]
}`

type (
	ProductV1 struct {
		ProductID      string           `avro:"product_id"`
		Name           string           `avro:"name"`
		SKU            string           `avro:"sku"`
		Brand          string           `avro:"brand"`
		Category       string           `avro:"category"`
		Origin         string           `avro:"origin"`
		Description    string           `avro:"description"`
		Price          ProductPriceV1   `avro:"price"`
		OriginalPrice  ProductPriceV1   `avro:"original_price"`
		Rating         float64          `avro:"rating"`
		ReviewCount    int64            `avro:"review_count"`
		Badge          string           `avro:"badge"`
		AvailableStock int64            `avro:"available_stock"`
		Images         []ProductImageV1 `avro:"images"`
	}

	ProductPriceV1 struct {
		Amount   float64 `avro:"amount"`
		Currency string  `avro:"currency"`
	}

	ProductImageV1 struct {
		URL string `avro:"url"`
		Alt string `avro:"alt"`
	}
)
