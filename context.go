package xamine

import (
	"log/slog"
	"sync/atomic"
	"unsafe"
)

// coreEventMin/coreEventMax bound the core event-number space (the compiler
// skips event numbers above 63); coreErrorMax bounds the core error-code
// space (spec §4.E: codes < 128 are core).
const (
	coreEventMin = 2
	coreEventMax = 63
	coreErrorMax = 127
)

// ContextOption configures a Context at construction time.
type ContextOption func(*Context)

// WithLogger overrides the slog.Logger used to report schema-compile
// warnings (unrecognized elements, elements missing required attributes).
// Defaults to slog.Default().
func WithLogger(l *slog.Logger) ContextOption {
	return func(c *Context) { c.logger = l }
}

// Context is the process-wide, reference-counted, immutable-after-construction
// registry described in spec §3: every loaded Definition (core and
// extension), the core event/error code tables, and the linked collection
// of Extensions.
type Context struct {
	refs int32 // atomic; manipulated only via Acquire/Release

	registry *Registry

	coreEvents [coreEventMax + 1]Definition // indices 0,1 unused
	coreErrors [coreErrorMax + 1]Definition

	extensions []*Extension

	// hostLittleEndian records the host's native byte order, detected once
	// at construction (spec §3: "Host endianness is detected at Context
	// construction and stored as a single bit").
	hostLittleEndian bool

	logger *slog.Logger
}

// NewContext constructs a Context with the nine core primitives already
// registered. flags must be NoFlags; any other bit returns ErrInvalidFlags.
func NewContext(flags Flags, opts ...ContextOption) (*Context, error) {
	if !flags.valid() {
		return nil, ErrInvalidFlags
	}
	ctx := &Context{
		refs:             1,
		registry:         NewRegistry(),
		hostLittleEndian: detectHostLittleEndian(),
		logger:           slog.Default(),
	}
	bootstrapPrimitives(ctx.registry)
	for _, opt := range opts {
		if opt != nil {
			opt(ctx)
		}
	}
	return ctx, nil
}

// detectHostLittleEndian reports the running process's native byte order.
func detectHostLittleEndian() bool {
	var x uint16 = 1
	return *(*byte)(unsafe.Pointer(&x)) == 1
}

// Acquire increments the reference count and returns ctx.
func (c *Context) Acquire() *Context {
	atomic.AddInt32(&c.refs, 1)
	return c
}

// Release decrements the reference count. When it reaches zero the Context
// is considered freed; callers must not use it afterward. The count itself
// is updated atomically; nothing else in the Context is guarded against
// concurrent use.
func (c *Context) Release() *Context {
	if atomic.AddInt32(&c.refs, -1) <= 0 {
		return nil
	}
	return c
}

// Definitions returns every registered Definition in insertion order.
func (c *Context) Definitions() []Definition {
	return c.registry.Definitions()
}

// Extensions returns the Context's loaded extensions in registration order.
func (c *Context) Extensions() []*Extension {
	out := make([]*Extension, len(c.extensions))
	copy(out, c.extensions)
	return out
}

// extensionByShortName finds (or, if create is true, creates and appends)
// the Extension with the given short name.
func (c *Context) extensionByShortName(shortName, xname string, create bool) *Extension {
	for _, ext := range c.extensions {
		if ext.ShortName == shortName {
			return ext
		}
	}
	if !create {
		return nil
	}
	ext := &Extension{ShortName: shortName, XName: xname}
	c.extensions = append(c.extensions, ext)
	return ext
}

// coreEventDefinition returns the Definition registered for core event
// number n, or nil if none is registered (spec's "schema gap").
func (c *Context) coreEventDefinition(n int) Definition {
	if n < coreEventMin || n > coreEventMax {
		return nil
	}
	return c.coreEvents[n]
}

// coreErrorDefinition returns the Definition registered for core error code
// n, or nil if none is registered.
func (c *Context) coreErrorDefinition(n int) Definition {
	if n < 0 || n > coreErrorMax {
		return nil
	}
	return c.coreErrors[n]
}

// RegisterCoreError records def as the Definition dissected for core error
// code n (0-127). The schema compiler does not yet synthesize Definitions
// from <error> elements (they are recognized and otherwise ignored, per
// compileElement); this is the direct entry point a caller uses to make a
// particular error code dissectable in the meantime. Reports false, doing
// nothing, if n is out of range.
func (c *Context) RegisterCoreError(n int, def Definition) bool {
	if n < 0 || n > coreErrorMax {
		return false
	}
	c.coreErrors[n] = def
	return true
}

// RegisterCoreEvent is RegisterCoreError's counterpart for core event codes
// (2-63).
func (c *Context) RegisterCoreEvent(n int, def Definition) bool {
	if n < coreEventMin || n > coreEventMax {
		return false
	}
	c.coreEvents[n] = def
	return true
}
