package feed

// State es derivado, nunca se guarda.
type State int

const (
	StateEmpty State = iota
	StateActive
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateActive:
		return "active"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Cursor recorre una lista fija de perfiles.
// Invariante: 0 <= pos <= len(items). pos == len(items) significa agotado.
type Cursor struct {
	items []Profile
	pos   int
}

// NewCursor copia items: la lista no cambia después de poblarse.
func NewCursor(items []Profile) Cursor {
	cp := make([]Profile, len(items))
	copy(cp, items)
	return Cursor{items: cp}
}

// Advance pasa al siguiente perfil. Desde el último (o ya agotado) deja pos = len.
func (c *Cursor) Advance() {
	if c.pos < len(c.items)-1 {
		c.pos++
		return
	}
	c.pos = len(c.items)
}

// Reset vuelve al primero. Con lista vacía pos ya es 0.
func (c *Cursor) Reset() {
	c.pos = 0
}

func (c Cursor) Current() (Profile, bool) {
	if c.pos >= len(c.items) {
		return Profile{}, false
	}
	return c.items[c.pos], true
}

func (c Cursor) State() State {
	switch {
	case len(c.items) == 0:
		return StateEmpty
	case c.pos < len(c.items):
		return StateActive
	default:
		return StateExhausted
	}
}

func (c Cursor) Position() int { return c.pos }

func (c Cursor) Len() int { return len(c.items) }

// Items devuelve una copia de la lista.
func (c Cursor) Items() []Profile {
	out := make([]Profile, len(c.items))
	copy(out, c.items)
	return out
}
