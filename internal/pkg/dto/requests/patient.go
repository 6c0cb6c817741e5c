package requests

// SavePatient carries one section of form state to persist. The form map is
// raw editor state; the sanitizer decides what actually leaves the service.
type SavePatient struct {
	Section string                 `json:"section" validate:"required,oneof=basic vitals labs all"`
	Form    map[string]interface{} `json:"form" validate:"required"`
}

// DeriveField applies a single field change to form state and returns the
// recomputed derived values without persisting anything.
type DeriveField struct {
	Form  map[string]interface{} `json:"form"`
	Field string                 `json:"field" validate:"required"`
	Value interface{}            `json:"value"`
}
