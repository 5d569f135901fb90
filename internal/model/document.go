package model

import (
	"database/sql/driver"
	"fmt"
)

// Document is an opaque, schema-less JSON tree. The editor sends arbitrary
// nested state; this core stores and returns it without interpreting it.
type Document []byte

// EmptyDocument returns the zero content value for a new post.
func EmptyDocument() Document {
	return Document(`{}`)
}

// Value implements driver.Valuer so GORM writes the raw JSON into a JSON column.
func (d Document) Value() (driver.Value, error) {
	if len(d) == 0 {
		return []byte(`{}`), nil
	}
	return []byte(d), nil
}

// Scan implements sql.Scanner.
func (d *Document) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = EmptyDocument()
	case []byte:
		*d = append((*d)[:0], v...)
	case string:
		*d = Document(v)
	default:
		return fmt.Errorf("unsupported document type %T", value)
	}
	return nil
}

// GormDataType tells GORM which column type to migrate to.
func (Document) GormDataType() string {
	return "json"
}

// MarshalJSON passes the stored tree through untouched.
func (d Document) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte(`{}`), nil
	}
	return d, nil
}

// UnmarshalJSON keeps the incoming tree verbatim.
func (d *Document) UnmarshalJSON(data []byte) error {
	*d = append((*d)[:0], data...)
	return nil
}
