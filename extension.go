package xamine

// Extension is an X11 protocol extension: a short name used to qualify its
// type names in the registry, its wire name ("xname") used for opcode
// negotiation (out of scope here; negotiation is reserved), and its own
// event and error definition tables.
//
// Events is built up by the compiler as <event>/<eventcopy> elements are
// processed for this extension. The compiler ignores <error>/<errorcopy>,
// so Errors is filled only by a caller that appends to it directly. Both
// are ordered by registration, independent of the numeric codes a
// Conversation later assigns them at runtime.
type Extension struct {
	ShortName string
	XName     string

	Events []Definition
	Errors []Definition
}

// addEvent splices def onto the extension's event list. The spec calls out
// the original source's eventcopy-inside-extension bug by name: it
// allocates the copied event record but never performs this splice. This
// implementation always performs it.
func (e *Extension) addEvent(def Definition) {
	e.Events = append(e.Events, def)
}

func (e *Extension) addError(def Definition) {
	e.Errors = append(e.Errors, def)
}
