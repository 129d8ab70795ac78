package object

// Thrown is a language-level throw surfaced as a Go error. A getter trap
// that throws returns one; it must reach the caller of the resolution
// entry point unchanged so the execution engine can re-raise the value.
type Thrown struct {
	Value Value
}

func (t *Thrown) Error() string {
	return t.Value.String()
}
