package schema

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/sr"
)

var _ SchemaIdentifier = (*SchemaCreater)(nil)

// A SchemaCreater registers the schema under the subject in the
// schema registry and reports the assigned id. Registering the same
// schema twice is a lookup, so DetermineID is safe on every start.
type SchemaCreater struct {
	client *sr.Client
}

func NewSchemaCreater(client *sr.Client) SchemaCreater {
	return SchemaCreater{client}
}

func (c SchemaCreater) DetermineID(
	ctx context.Context, subject, avroSchemaText string,
) (int, error) {
	const op = "SchemaCreater.DetermineID"

	ss, err := c.client.CreateSchema(ctx, subject, sr.Schema{
		Schema: avroSchemaText,
		Type:   sr.TypeAvro,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return ss.ID, nil
}
