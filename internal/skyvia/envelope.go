package skyvia

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/angelmondragon/skyvia-mcp/pkg/errors"
)

// Page is the upstream pagination envelope. Skyvia never returns a
// total count or a cursor; callers page by incrementing skip.
type Page[T any] struct {
	Data    []T  `json:"data"`
	HasMore bool `json:"hasMore"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Record decodes a single flat object. Any other JSON kind, a field of
// the wrong primitive type, or a missing required field is a Shape
// error naming what was received.
func Record[T any](out Outcome) (T, error) {
	var zero T
	if out.NoContent() {
		return zero, errors.New(errors.CodeShape, "expected a JSON object, received no content")
	}
	if kind := jsonKind(out.Body); kind != "object" {
		return zero, shapeError("expected a JSON object, received "+kind, out.Body)
	}
	return decodeRecord[T](out.Body)
}

// List decodes a bare JSON array of records. Element-level failures
// abort the whole call; there are no partial results.
func List[T any](out Outcome) ([]T, error) {
	if out.NoContent() {
		return nil, errors.New(errors.CodeShape, "expected a JSON array, received no content")
	}
	if kind := jsonKind(out.Body); kind != "array" {
		return nil, shapeError("expected a JSON array, received "+kind, out.Body)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(out.Body, &elements); err != nil {
		return nil, shapeError(fmt.Sprintf("decoding array: %v", err), out.Body)
	}
	items := make([]T, 0, len(elements))
	for i, element := range elements {
		item, err := decodeRecord[T](element)
		if err != nil {
			return nil, errors.Op(fmt.Sprintf("element %d", i), err)
		}
		items = append(items, item)
	}
	return items, nil
}

// PageOf decodes a {data, hasMore} envelope. A null or absent data
// array is normalized to an empty slice; a missing hasMore flag is a
// Shape error since the protocol requires it.
func PageOf[T any](out Outcome) (Page[T], error) {
	if out.NoContent() {
		return Page[T]{}, errors.New(errors.CodeShape, "expected a paged object, received no content")
	}
	if kind := jsonKind(out.Body); kind != "object" {
		return Page[T]{}, shapeError("expected a paged object, received "+kind, out.Body)
	}

	var envelope struct {
		Data    []json.RawMessage `json:"data"`
		HasMore *bool             `json:"hasMore"`
	}
	if err := json.Unmarshal(out.Body, &envelope); err != nil {
		return Page[T]{}, shapeError(decodeFailure(err), out.Body)
	}
	if envelope.HasMore == nil {
		return Page[T]{}, shapeError("missing required field hasMore", out.Body)
	}

	page := Page[T]{Data: make([]T, 0, len(envelope.Data)), HasMore: *envelope.HasMore}
	for i, element := range envelope.Data {
		item, err := decodeRecord[T](element)
		if err != nil {
			return Page[T]{}, errors.Op(fmt.Sprintf("data element %d", i), err)
		}
		page.Data = append(page.Data, item)
	}
	return page, nil
}

// Optional implements the active-resource idiom shared by the "active
// execution"/"active run" endpoints: an HTTP 404, a successful response
// that is empty or not an object, or an object missing its primary
// identifier all mean "nothing active right now" rather than an error.
// present reports whether the decoded value carries its identifier.
func Optional[T any](out Outcome, err error, present func(T) bool) (*T, error) {
	if err != nil {
		if errors.IsStatus(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if out.NoContent() || jsonKind(out.Body) != "object" {
		return nil, nil
	}
	// Decode without the required-field checks: a well-formed object
	// missing its identifier means "absent", not a shape violation.
	var value T
	if err := json.Unmarshal(out.Body, &value); err != nil {
		return nil, shapeError(decodeFailure(err), out.Body)
	}
	if !present(value) {
		return nil, nil
	}
	return &value, nil
}

func decodeRecord[T any](raw json.RawMessage) (T, error) {
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		var zero T
		return zero, shapeError(decodeFailure(err), raw)
	}
	if err := checkRequired(value); err != nil {
		var zero T
		return zero, shapeError(err.Error(), raw)
	}
	return value, nil
}

// checkRequired enforces the `validate` tags on decoded records.
// Non-struct shapes (for example the endpoint type map) carry no tags
// and pass through.
func checkRequired(value any) error {
	err := validate.Struct(value)
	if err == nil {
		return nil
	}
	if _, ok := err.(*validator.InvalidValidationError); ok {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		return fmt.Errorf("missing or invalid required field %s", fieldErrs[0].Field())
	}
	return err
}

func decodeFailure(err error) string {
	if typeErr, ok := err.(*json.UnmarshalTypeError); ok && typeErr.Field != "" {
		return fmt.Sprintf("field %s: expected %s, received JSON %s",
			typeErr.Field, typeErr.Type, typeErr.Value)
	}
	return fmt.Sprintf("decoding response: %v", err)
}

func shapeError(message string, raw json.RawMessage) *errors.Error {
	return errors.New(errors.CodeShape, message).WithDetails(json.RawMessage(bytes.Clone(raw)))
}

// jsonKind names the top-level JSON kind of raw for error messages.
func jsonKind(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "empty"
	}
	switch trimmed[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
