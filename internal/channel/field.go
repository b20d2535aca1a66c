package channel

import "fmt"

// Field names an editable channel attribute.
type Field string

const (
	FieldTvgID      Field = "tvg-id"
	FieldTvgName    Field = "tvg-name"
	FieldTvgLogo    Field = "tvg-logo"
	FieldGroupTitle Field = "group-title"
	FieldName       Field = "name"
	FieldURL        Field = "url"
)

// Fields lists every editable field in serialization order.
var Fields = []Field{FieldTvgID, FieldTvgName, FieldTvgLogo, FieldGroupTitle, FieldName, FieldURL}

// ParseField converts a field name into a Field.
// Returns ErrUnknownField for names that are not editable.
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}
