package xamine

import "sync/atomic"

// extEventMin/extEventMax and extErrorMin/extErrorMax bound the dynamic,
// per-connection extension code spaces (spec §3/§4.E): event codes 64-127,
// error codes 128-255.
const (
	extEventMin = 64
	extEventMax = 127
	extErrorMin = 128
	extErrorMax = 255
)

// ConversationOption configures a Conversation at construction time.
type ConversationOption func(*Conversation)

// WithPeerLittleEndian sets the initial peer byte order, overriding the
// host-endianness default. Real negotiation reads this off the X11
// connection-setup reply; that reader is out of scope here (spec §9's
// "Conversation endianness negotiation" open question), so this and
// SetPeerEndianness are the reserved hook a caller uses once it has done
// that reading itself.
func WithPeerLittleEndian(littleEndian bool) ConversationOption {
	return func(cv *Conversation) { cv.peerLittleEndian = littleEndian }
}

// Conversation is per-connection dissection state: a Context, the peer's
// byte order, and the dynamic extension opcode/event/error mappings
// discovered over the life of one X11 connection.
type Conversation struct {
	refs int32 // atomic

	ctx *Context

	peerLittleEndian bool

	extByOpcode map[uint8]*Extension
	extEvents   map[int]Definition // code (64-127) -> Definition
	extErrors   map[int]Definition // code (128-255) -> Definition
}

// NewConversation binds a Conversation to ctx. flags must be NoFlags.
// Acquires a reference on ctx that Release gives back up when the
// Conversation's own reference count reaches zero.
func NewConversation(ctx *Context, flags Flags, opts ...ConversationOption) (*Conversation, error) {
	if !flags.valid() {
		return nil, ErrInvalidFlags
	}
	cv := &Conversation{
		refs:             1,
		ctx:              ctx.Acquire(),
		peerLittleEndian: ctx.hostLittleEndian,
		extByOpcode:      make(map[uint8]*Extension),
		extEvents:        make(map[int]Definition),
		extErrors:        make(map[int]Definition),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cv)
		}
	}
	return cv, nil
}

// Context returns the Context this Conversation is bound to.
func (cv *Conversation) Context() *Context { return cv.ctx }

// Acquire increments the reference count and returns cv.
func (cv *Conversation) Acquire() *Conversation {
	atomic.AddInt32(&cv.refs, 1)
	return cv
}

// Release decrements the reference count, releasing the bound Context when
// it reaches zero.
func (cv *Conversation) Release() *Conversation {
	if atomic.AddInt32(&cv.refs, -1) <= 0 {
		cv.ctx.Release()
		return nil
	}
	return cv
}

// SetPeerEndianness records the peer's byte order, as read from the
// connection-setup exchange by the caller. Reserved entry point; see
// WithPeerLittleEndian.
func (cv *Conversation) SetPeerEndianness(littleEndian bool) {
	cv.peerLittleEndian = littleEndian
}

// RegisterExtension records that opcode identifies ext on this connection,
// and assigns ext's already-compiled events and errors to the dynamic
// 64-127 / 128-255 code spaces in registration order. This is the
// out-of-band registration spec §4.D reserves for "as opcodes are
// discovered"; real discovery happens via a QueryExtension round trip,
// which is outside the dissector's scope.
func (cv *Conversation) RegisterExtension(ext *Extension, opcode uint8) {
	cv.extByOpcode[opcode] = ext
	for i, def := range ext.Events {
		code := extEventMin + i
		if code > extEventMax {
			break
		}
		cv.extEvents[code] = def
	}
	for i, def := range ext.Errors {
		code := extErrorMin + i
		if code > extErrorMax {
			break
		}
		cv.extErrors[code] = def
	}
}

// extensionEventDefinition returns the Definition registered for extension
// event code n (64-127), or nil.
func (cv *Conversation) extensionEventDefinition(n int) Definition {
	return cv.extEvents[n]
}

// extensionErrorDefinition returns the Definition registered for extension
// error code n (128-255), or nil.
func (cv *Conversation) extensionErrorDefinition(n int) Definition {
	return cv.extErrors[n]
}
