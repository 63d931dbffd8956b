package schema

const ShopperEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront.session",
	"name": "shopper_event",
	"fields": [
		{"name": "session_id", "type": "string"},
		{"name": "kind", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "name", "type": "string", "default": ""},
		{"name": "brand", "type": "string", "default": ""},
		{"name": "price", "type": {
			"type": "record",
			"name": "event_price",
			"fields": [
				{"name": "amount", "type": "double"},
				{"name": "currency", "type": "string"}
			]
		}},
		{"name": "quantity", "type": "long", "default": 0},
		{"name": "at", "type": "long"}
	]
}`

type (
	ShopperEventV1 struct {
		SessionID string       `avro:"session_id"`
		Kind      string       `avro:"kind"`
		ProductID string       `avro:"product_id"`
		Name      string       `avro:"name"`
		Brand     string       `avro:"brand"`
		Price     EventPriceV1 `avro:"price"`
		Quantity  int64        `avro:"quantity"`
		At        int64        `avro:"at"`
	}

	EventPriceV1 struct {
		Amount   float64 `avro:"amount"`
		Currency string  `avro:"currency"`
	}
)
