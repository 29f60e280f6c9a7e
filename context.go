package slab

// Options configures a Context at construction time.
type Options struct {
	// InitialCapacity is the number of instances each component store
	// allocates for during Setup, before any doubling growth. Zero
	// means defaultInitialCapacity (16), the same default spec.md gives
	// Component_store::allocate_initial.
	InitialCapacity int
}

// Context owns every component store, archetype, and compiled foreach
// plan for one entity universe. It moves through three phases exactly as
// spec.md §3 describes: declaration (DeclareArchetype/DeclareForeach),
// Setup (exactly once), then operation (Create/Destroy/Clear/Get/
// IsAlive/Foreach/ForeachControl). There is no path back to declaration.
//
// A Context is not safe for concurrent use; callers must serialize their
// own access to it, per spec.md §5.
type Context struct {
	setUp   bool
	locked  bool
	options Options

	stores         []*componentStore
	storeIndexByID map[ComponentID]int

	archetypes     []*archetypeEntry
	archetypeCache handleCache

	foreaches    []*foreachPlan
	foreachCache handleCache

	iterationRecords []iterationRecord
	positionPool     []int
}

// NewContext constructs an empty Context ready for declarations.
func NewContext(opts Options) *Context {
	if opts.InitialCapacity <= 0 {
		opts.InitialCapacity = defaultInitialCapacity
	}
	return &Context{
		options:        opts,
		storeIndexByID: make(map[ComponentID]int),
		archetypeCache: newHandleCache(0),
		foreachCache:   newHandleCache(0),
	}
}

// Setup finalizes layout: every component store is allocated at its
// initial capacity and the Context moves into the operational phase.
// Declarations are forbidden afterward; Create/Destroy/Clear/Get/
// IsAlive/Foreach/ForeachControl are forbidden beforehand. Call exactly
// once.
func (c *Context) Setup() error {
	if c.setUp {
		panic(AlreadySetUpError{})
	}
	for _, store := range c.stores {
		if c.options.InitialCapacity > maxInstanceCount {
			return AllocFailureError{Component: store.id, Requested: c.options.InitialCapacity}
		}
		store.allocateInitial(c.options.InitialCapacity)
	}
	Config.events.onSetup(c)
	c.setUp = true
	return nil
}

func (c *Context) requireSetUp() {
	if !c.setUp {
		panic(NotSetUpError{})
	}
}

func (c *Context) requireUnlocked() {
	if c.locked {
		panic(LockedError{})
	}
}
