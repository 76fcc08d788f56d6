package gofilter

// Field is a logical record field. Stores translate fields to their own
// physical columns, so predicates and orderings stay storage-agnostic.
type Field string

const (
	FieldID        Field = "id"
	FieldName      Field = "name"
	FieldValue     Field = "value"
	FieldGroupID   Field = "group_id"
	FieldGroupName Field = "group_name"
)

var _knownFields = []Field{FieldID, FieldName, FieldValue, FieldGroupID, FieldGroupName}

func (f Field) Valid() bool {
	for _, known := range _knownFields {
		if f == known {
			return true
		}
	}

	return false
}

type (
	FieldAlias = string

	// FieldMapping maps external aliases (API parameters, CLI flags) to fields.
	// Key is an external alias, value is a logical field.
	FieldMapping = map[FieldAlias]Field

	// ColumnMapping maps logical fields to fully qualified column names.
	// Use qualified names when bare ones could cause an "ambiguous column name"
	// error in joined queries.
	ColumnMapping = map[Field]string
)

// DefaultFieldMapping exposes every field under its own name.
func DefaultFieldMapping() FieldMapping {
	ret := make(FieldMapping, len(_knownFields))
	for _, f := range _knownFields {
		ret[string(f)] = f
	}

	return ret
}
