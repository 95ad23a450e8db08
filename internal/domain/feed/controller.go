package feed

import (
	"context"
	"errors"
	"sync"

	"petmate/internal/platform/logger"
)

var (
	ErrClosed     = errors.New("feed controller closed")
	ErrSuperseded = errors.New("feed load superseded")
)

// View es una foto del estado para renderizar.
type View struct {
	State      State
	Current    Profile
	HasCurrent bool
	Position   int
	Len        int
	Loading    bool
	Err        error
}

// Controller es el dueño del cursor a nivel pantalla.
// Seguro para uso concurrente: los comandos de UI y el fin de un fetch se pueden cruzar.
type Controller struct {
	src  Source
	sink Sink
	log  logger.Logger

	mu      sync.Mutex
	cursor  Cursor
	loading bool
	err     error
	closed  bool

	gen        uint64
	loadCancel context.CancelFunc

	base       context.Context
	baseCancel context.CancelFunc
}

func NewController(src Source, sink Sink, log logger.Logger) *Controller {
	if log == nil {
		log = logger.NewNop()
	}
	base, cancel := context.WithCancel(context.Background())
	return &Controller{
		src:        src,
		sink:       sink,
		log:        log.With(map[string]any{"component": "feed"}),
		base:       base,
		baseCancel: cancel,
	}
}

// Load trae la lista y reemplaza el cursor.
// Si falla, el feed queda vacío con el error guardado (nunca queda cargando para siempre).
// Una carga pisada por otra más nueva, o por Close, descarta su resultado.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.loadCancel != nil {
		c.loadCancel()
	}
	c.gen++
	gen := c.gen

	lctx, cancel := context.WithCancel(c.base)
	stop := context.AfterFunc(ctx, cancel)
	c.loadCancel = cancel
	c.loading = true
	c.err = nil
	c.mu.Unlock()

	defer stop()
	defer cancel()

	items, err := c.src.Fetch(lctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if gen != c.gen {
		return ErrSuperseded
	}
	c.loading = false
	c.loadCancel = nil

	if err != nil {
		c.cursor = NewCursor(nil)
		c.err = err
		c.log.Warn("feed load failed", map[string]any{"err": err})
		return err
	}

	c.cursor = NewCursor(items)
	c.log.Debug("feed loaded", map[string]any{"count": len(items)})
	return nil
}

func (c *Controller) Like(ctx context.Context) (Decision, bool) {
	return c.Decide(ctx, OutcomeLike)
}

func (c *Controller) Dislike(ctx context.Context) (Decision, bool) {
	return c.Decide(ctx, OutcomeDislike)
}

// Decide registra la decisión sobre el perfil actual y avanza.
// Sin perfil actual (vacío, agotado, cargando) no hace nada.
func (c *Controller) Decide(ctx context.Context, outcome Outcome) (Decision, bool) {
	if !outcome.Valid() {
		return Decision{}, false
	}

	c.mu.Lock()
	if c.closed || c.loading {
		c.mu.Unlock()
		return Decision{}, false
	}
	cur, ok := c.cursor.Current()
	if !ok {
		c.mu.Unlock()
		return Decision{}, false
	}
	d := Decision{PetID: cur.ID, Outcome: outcome}
	c.cursor.Advance()
	c.mu.Unlock()

	// Fire-and-forget: un error del sink no frena el feed.
	if c.sink != nil {
		if err := c.sink.Record(ctx, d); err != nil {
			c.log.Warn("decision not recorded", map[string]any{
				"pet_id":  d.PetID,
				"outcome": string(d.Outcome),
				"err":     err,
			})
		}
	}
	return d, true
}

// Reset vuelve al primer perfil ("Yenile" / refresh).
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cursor.Reset()
}

func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur, ok := c.cursor.Current()
	return View{
		State:      c.cursor.State(),
		Current:    cur,
		HasCurrent: ok,
		Position:   c.cursor.Position(),
		Len:        c.cursor.Len(),
		Loading:    c.loading,
		Err:        c.err,
	}
}

// Close cancela cualquier carga en curso. El Sink no se cierra acá: lo maneja quien lo creó.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.loading = false
	if c.loadCancel != nil {
		c.loadCancel()
		c.loadCancel = nil
	}
	c.baseCancel()
}
