package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringArray handles JSON string arrays stored in JSONB (PostgreSQL) or TEXT (SQLite)
type StringArray []string

// Scan implements the Scanner interface for StringArray
func (a *StringArray) Scan(src interface{}) error {
	data, err := jsonBytes(src)
	if err != nil {
		return err
	}
	if data == nil {
		*a = []string{}
		return nil
	}
	if err := json.Unmarshal(data, a); err != nil {
		return err
	}
	if *a == nil {
		*a = []string{}
	}
	return nil
}

// Value implements the Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(a))
}

// JSONList stores a slice of structured section entries as a JSON array.
type JSONList[T any] []T

// Scan implements the Scanner interface for JSONList
func (l *JSONList[T]) Scan(src interface{}) error {
	data, err := jsonBytes(src)
	if err != nil {
		return err
	}
	if data == nil {
		*l = JSONList[T]{}
		return nil
	}
	if err := json.Unmarshal(data, l); err != nil {
		return err
	}
	if *l == nil {
		*l = JSONList[T]{}
	}
	return nil
}

// Value implements the Valuer interface for JSONList
func (l JSONList[T]) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]T(l))
}

func jsonBytes(src interface{}) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported JSON column type %T", src)
	}
}
