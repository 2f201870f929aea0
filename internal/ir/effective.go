package ir

// Provenance records where an effective identifier came from.
type Provenance string

const (
	SourceAbsent   Provenance = "absent"
	SourceOverride Provenance = "external-override"
	SourceCreated  Provenance = "internally-created"
)

// EffectiveValue is a resolved identifier plus its provenance. An absent
// value has Source SourceAbsent and an empty Value; consumers must check
// Present before reading Value.
type EffectiveValue struct {
	Value  string     `json:"value,omitempty"`
	Source Provenance `json:"source"`
}

func Absent() EffectiveValue {
	return EffectiveValue{Source: SourceAbsent}
}

func Override(id string) EffectiveValue {
	return EffectiveValue{Value: id, Source: SourceOverride}
}

func Created(handle string) EffectiveValue {
	return EffectiveValue{Value: handle, Source: SourceCreated}
}

// Present reports whether the value resolved to an identifier.
func (v EffectiveValue) Present() bool {
	return v.Source != SourceAbsent && v.Source != ""
}
