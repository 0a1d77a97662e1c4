package types

import (
	"encoding/json"
	"fmt"
)

// Entity is one record in a view's collection.
type Entity interface {
	// TableName returns the standard table the entity belongs to.
	TableName() string
	// EntityID returns the display identifier.
	EntityID() string
	// SetEntityID assigns the display identifier.
	SetEntityID(id string)
	// SearchText returns the fields that free-text search matches against.
	SearchText() []string
	// EnumValue returns the value of a filterable enum field.
	// Returns false when the entity has no such field.
	EnumValue(field string) (string, bool)
	// Validate checks enum fields against their closed sets and required
	// fields for presence.
	Validate() error
}

// NewEntity returns a zero entity pointer for the given table.
// Returns ErrTableNotFound for unknown tables.
func NewEntity(table string) (Entity, error) {
	switch table {
	case TableDrones:
		return &Drone{}, nil
	case TableAlerts:
		return &Alert{}, nil
	case TableReports:
		return &Report{}, nil
	case TableMaintenance:
		return &MaintenanceTask{}, nil
	case TableMissions:
		return &MissionTask{}, nil
	case TableUsers:
		return &User{}, nil
	case TableNotifications:
		return &Notification{}, nil
	default:
		return nil, ErrTableNotFound
	}
}

// EncodeEntity serializes an entity to its JSON record form.
func EncodeEntity(e Entity) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encoding %s %s: %w", e.TableName(), e.EntityID(), err)
	}
	return data, nil
}

// DecodeEntity parses a JSON record into a new entity of the table's type.
func DecodeEntity(table string, data []byte) (Entity, error) {
	e, err := NewEntity(table)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, e); err != nil {
		return nil, fmt.Errorf("decoding %s record: %w", table, err)
	}
	return e, nil
}

// oneOf reports whether v is a member of set.
func oneOf(v string, set []string) bool {
	for _, s := range set {
		if v == s {
			return true
		}
	}
	return false
}

// checkEnum returns a wrapped ErrInvalidValue when v is not in set.
func checkEnum(field, v string, set []string) error {
	if !oneOf(v, set) {
		return fmt.Errorf("%s %q: %w", field, v, ErrInvalidValue)
	}
	return nil
}

// AsEntity checks that data is an entity pointer belonging to table.
// Returns ErrInvalidData otherwise.
func AsEntity(table string, data any) (Entity, error) {
	e, ok := data.(Entity)
	if !ok || e == nil {
		return nil, fmt.Errorf("%T is not an entity: %w", data, ErrInvalidData)
	}
	if e.TableName() != table {
		return nil, fmt.Errorf("%s entity in %s table: %w", e.TableName(), table, ErrInvalidData)
	}
	return e, nil
}
