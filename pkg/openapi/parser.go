package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrOperationNotFound is returned when a document has no operation with the
// requested id.
var ErrOperationNotFound = errors.New("openapi: operation not found")

var bodyMediaTypes = []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"}

// Operations parses doc with kin-openapi and returns its operations keyed by
// operationId. Operations without an id are keyed "method:path".
func Operations(ctx context.Context, doc Document) (map[string]Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi parser: document does not contain any paths")
	}

	operations := make(map[string]Operation)
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			operations[id] = Operation{
				ID:          id,
				Method:      strings.ToUpper(method),
				Path:        path,
				Summary:     op.Summary,
				RequestBody: requestSchema(op.RequestBody),
			}
		}
	}
	return operations, nil
}

// FindOperation parses doc and returns the operation named id.
func FindOperation(ctx context.Context, doc Document, id string) (Operation, error) {
	operations, err := Operations(ctx, doc)
	if err != nil {
		return Operation{}, err
	}
	op, ok := operations[id]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %q", ErrOperationNotFound, id)
	}
	return op, nil
}

// OperationIDs returns the sorted ids of operations.
func OperationIDs(operations map[string]Operation) []string {
	ids := make([]string, 0, len(operations))
	for id := range operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func requestSchema(body *openapi3.RequestBodyRef) Schema {
	if body == nil {
		return Schema{}
	}
	if body.Value == nil {
		return Schema{Ref: body.Ref}
	}
	content := body.Value.Content
	for _, mediaType := range bodyMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return convertSchema(mt.Schema, nil)
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil {
			return convertSchema(mt.Schema, nil)
		}
	}
	return Schema{}
}

// convertSchema copies ref into a Schema. Recursive references stop at the
// first repeat and keep only the $ref.
func convertSchema(ref *openapi3.SchemaRef, seen map[*openapi3.Schema]bool) Schema {
	if ref == nil {
		return Schema{}
	}
	if ref.Value == nil || seen[ref.Value] {
		return Schema{Ref: ref.Ref}
	}
	if seen == nil {
		seen = make(map[*openapi3.Schema]bool)
	}
	seen[ref.Value] = true
	defer delete(seen, ref.Value)

	src := ref.Value
	schema := Schema{
		Ref:      ref.Ref,
		Type:     firstSchemaType(src.Type),
		Format:   src.Format,
		Default:  src.Default,
		Example:  src.Example,
		MinItems: int(src.MinItems),
	}
	if len(src.Required) > 0 {
		schema.Required = append([]string(nil), src.Required...)
	}
	if len(src.Enum) > 0 {
		schema.Enum = append([]any(nil), src.Enum...)
	}
	if len(src.Properties) > 0 {
		schema.Properties = make(map[string]Schema, len(src.Properties))
		for name, property := range src.Properties {
			schema.Properties[name] = convertSchema(property, seen)
		}
	}
	if src.Items != nil {
		items := convertSchema(src.Items, seen)
		schema.Items = &items
	}
	if src.Min != nil {
		value := *src.Min
		schema.Minimum = &value
	}
	if src.Max != nil {
		value := *src.Max
		schema.Maximum = &value
	}
	if src.MinLength != 0 {
		value := int(src.MinLength)
		schema.MinLength = &value
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		schema.MaxLength = &value
	}

	for _, part := range src.AllOf {
		mergeSchema(&schema, convertSchema(part, seen))
	}
	if schema.Type == "" && len(schema.Properties) == 0 {
		for _, alternatives := range []openapi3.SchemaRefs{src.OneOf, src.AnyOf} {
			if len(alternatives) > 0 {
				mergeSchema(&schema, convertSchema(alternatives[0], seen))
				break
			}
		}
	}
	if schema.Type == "" && len(schema.Properties) > 0 {
		schema.Type = "object"
	}
	return schema
}

func mergeSchema(target *Schema, part Schema) {
	if target.Type == "" {
		target.Type = part.Type
	}
	if target.Format == "" {
		target.Format = part.Format
	}
	if len(part.Properties) > 0 {
		if target.Properties == nil {
			target.Properties = make(map[string]Schema, len(part.Properties))
		}
		for name, property := range part.Properties {
			if _, exists := target.Properties[name]; !exists {
				target.Properties[name] = property
			}
		}
	}
	target.Required = append(target.Required, part.Required...)
	if target.Items == nil {
		target.Items = part.Items
	}
	if len(target.Enum) == 0 {
		target.Enum = part.Enum
	}
	if target.MaxLength == nil {
		target.MaxLength = part.MaxLength
	}
	if target.MinLength == nil {
		target.MinLength = part.MinLength
	}
	if target.Minimum == nil {
		target.Minimum = part.Minimum
	}
	if target.Maximum == nil {
		target.Maximum = part.Maximum
	}
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != "null" {
			return value
		}
	}
	return ""
}
