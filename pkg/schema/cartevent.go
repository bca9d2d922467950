package schema

const CartEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "shop",
	"name": "cart_event",
	"fields": [
		{"name": "event", "type": "string"},
		{"name": "product_id", "type": "int"},
		{"name": "code", "type": "string"},
		{"name": "name", "type": "string"},
		{"name": "quantity", "type": "int"},
		{"name": "unit_price", "type": "double"},
		{"name": "subtotal", "type": "double"},
		{"name": "occurred_at", "type": "long"}
	]
}`

// A CartEventV1 is the wire form of one cart mutation. OccurredAt is
// milliseconds since the Unix epoch.
type CartEventV1 struct {
	Event      string  `avro:"event"`
	ProductID  int     `avro:"product_id"`
	Code       string  `avro:"code"`
	Name       string  `avro:"name"`
	Quantity   int     `avro:"quantity"`
	UnitPrice  float64 `avro:"unit_price"`
	Subtotal   float64 `avro:"subtotal"`
	OccurredAt int64   `avro:"occurred_at"`
}
