package dao

import "time"

// Well-known parameter names understood by the entity stores.
const (
	ParamStoreID = "storeId"
	ParamStatus  = "status"
	ParamSince   = "since"
	ParamUntil   = "until"
)

// Parameter is a named query value passed to Service.List.
type Parameter struct {
	Name  string
	Value interface{}
}

func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}

// ByStoreID filters records belonging to a store.
func ByStoreID(storeID string) *Parameter {
	return &Parameter{Name: ParamStoreID, Value: storeID}
}

// ByStatus filters records carrying the given status.
func ByStatus(status string) *Parameter {
	return &Parameter{Name: ParamStatus, Value: status}
}

// Since filters records created at or after t.
func Since(t time.Time) *Parameter {
	return &Parameter{Name: ParamSince, Value: t}
}

// Until filters records created at or before t.
func Until(t time.Time) *Parameter {
	return &Parameter{Name: ParamUntil, Value: t}
}
