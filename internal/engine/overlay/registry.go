// Package overlay implements ordered, pure transformations over a package
// set. Overlays compose left to right into a single fixed point: every
// binding is installed as a deferred thunk and forced on first read, so an
// overlay may reference names that a later overlay defines.
package overlay

import (
	"slices"
	"strings"

	"go.husk.sh/husk/internal/core/domain"
	"go.trai.ch/zerr"
)

// View is a read handle over a possibly unresolved package set. Reading a
// deferred binding forces it.
type View interface {
	// Lookup returns the binding for name, forcing it if deferred.
	// Returns ErrBindingNotFound for unbound names and ErrCircularOverlay
	// when forcing re-enters an in-flight binding.
	Lookup(name string) (domain.PackageRef, error)

	// Names returns the bound names in sorted order.
	Names() []string
}

// Thunk produces a package reference when its binding is first read.
type Thunk func() (domain.PackageRef, error)

// Ref wraps an already-resolved reference as a Thunk.
func Ref(ref domain.PackageRef) Thunk {
	return func() (domain.PackageRef, error) {
		return ref, nil
	}
}

// Func computes an overlay's bindings. self is a lazy view of the final
// composed set (the fixed point across every stage); super is a view of the
// set produced by the stages before this one. The returned thunks are
// installed without being forced, so reads of self and super belong inside
// the thunks; that is what makes forward references work.
type Func func(self, super View) map[string]Thunk

// Overlay is a named pure transformation over a package set. The name
// appears in conflict and cycle reports.
type Overlay struct {
	Name  string
	Apply Func
}

// Extend returns an overlay that binds the given references verbatim.
func Extend(name string, refs ...domain.PackageRef) Overlay {
	return Overlay{
		Name: name,
		Apply: func(_, _ View) map[string]Thunk {
			bindings := make(map[string]Thunk, len(refs))
			for _, ref := range refs {
				bindings[ref.Name.String()] = Ref(ref)
			}
			return bindings
		},
	}
}

// FromStage compiles a declarative manifest stage into an overlay. The
// resolve callback maps package requests to references and is invoked
// lazily, when a binding is first read.
func FromStage(stage domain.OverlayStage, resolve func(domain.PackageRequest) (domain.PackageRef, error)) Overlay {
	return Overlay{
		Name: stage.Name,
		Apply: func(_, _ View) map[string]Thunk {
			bindings := make(map[string]Thunk, len(stage.Add)+len(stage.Override))
			for name, version := range stage.Add {
				req := domain.PackageRequest{Name: name, Version: version}
				bindings[name] = func() (domain.PackageRef, error) {
					return resolve(req)
				}
			}
			for name, version := range stage.Override {
				req := domain.PackageRequest{Name: name, Version: version}
				bindings[name] = func() (domain.PackageRef, error) {
					return resolve(req)
				}
			}
			return bindings
		},
	}
}

// Registry holds an ordered sequence of overlays. The zero-value defaults
// shadow duplicate bindings silently; WithStrictConflicts turns duplicates
// across overlays into errors.
type Registry struct {
	overlays []Overlay
	strict   bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithStrictConflicts makes a binding installed by more than one overlay an
// error. Rebinding a name from the base set stays legal; the conflict rule
// is between overlays only.
func WithStrictConflicts() Option {
	return func(r *Registry) {
		r.strict = true
	}
}

// NewRegistry creates a Registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Append adds overlays to the end of the sequence.
func (r *Registry) Append(overlays ...Overlay) {
	r.overlays = append(r.overlays, overlays...)
}

// Len returns the number of registered overlays.
func (r *Registry) Len() int {
	return len(r.overlays)
}

// Apply composes base with every registered overlay, left to right, and
// returns the fully resolved result. Neither base nor the registry is
// mutated, and no resolution state survives the call: applying the same
// registry twice re-evaluates every overlay.
func (r *Registry) Apply(base domain.PackageSet) (domain.PackageSet, error) {
	res := &resolution{}

	live := make(map[string]*cell, base.Len())
	for _, name := range base.Names() {
		ref, _ := base.Lookup(name)
		live[name] = &cell{state: cellResolved, ref: ref}
	}

	// self reads the live table, which ends up holding the final binding
	// for every name once all stages are installed.
	self := &view{res: res, cells: live}

	for _, o := range r.overlays {
		// super sees the table as it stood before this stage. Cells are
		// shared, so forcing through either view resolves the same binding
		// exactly once.
		superCells := make(map[string]*cell, len(live))
		for name, c := range live {
			superCells[name] = c
		}
		super := &view{res: res, cells: superCells}

		bindings := o.Apply(self, super)
		for _, name := range sortedBindingNames(bindings) {
			if existing, bound := live[name]; bound && r.strict && existing.overlay != "" {
				err := zerr.With(domain.ErrOverlayConflict, "binding", name)
				err = zerr.With(err, "overlay", o.Name)
				err = zerr.With(err, "bound_by", existing.overlay)
				return domain.PackageSet{}, err
			}
			live[name] = &cell{state: cellDeferred, thunk: bindings[name], overlay: o.Name}
		}
	}

	// Force every binding. Deferred thunks may force others transitively;
	// the resolution context tracks the active chain for cycle reports.
	names := make([]string, 0, len(live))
	for name := range live {
		names = append(names, name)
	}
	slices.Sort(names)

	refs := make([]domain.PackageRef, 0, len(names))
	for _, name := range names {
		ref, err := res.force(name, live[name])
		if err != nil {
			return domain.PackageSet{}, err
		}
		refs = append(refs, ref)
	}
	return domain.NewPackageSet(refs...), nil
}

type cellState uint8

const (
	cellDeferred cellState = iota
	cellForcing
	cellResolved
)

// cell is one binding in the composition table.
type cell struct {
	state   cellState
	ref     domain.PackageRef
	thunk   Thunk
	overlay string
}

// resolution is the per-Apply forcing context. Composition is confined to a
// single goroutine, so the force chain needs no locking.
type resolution struct {
	path []string
}

func (r *resolution) force(name string, c *cell) (domain.PackageRef, error) {
	switch c.state {
	case cellResolved:
		return c.ref, nil
	case cellForcing:
		return domain.PackageRef{}, r.cycleError(name)
	case cellDeferred:
	}

	c.state = cellForcing
	r.path = append(r.path, name)

	ref, err := c.thunk()

	r.path = r.path[:len(r.path)-1]
	if err != nil {
		// Leave the cell deferred so a later Apply re-evaluates it.
		c.state = cellDeferred
		return domain.PackageRef{}, err
	}

	c.ref = ref
	c.state = cellResolved
	return ref, nil
}

// cycleError renders the reference cycle from the active force chain.
func (r *resolution) cycleError(name string) error {
	start := 0
	for i, n := range r.path {
		if n == name {
			start = i
			break
		}
	}

	var b strings.Builder
	for _, n := range r.path[start:] {
		b.WriteString(n)
		b.WriteString(" -> ")
	}
	b.WriteString(name)

	return zerr.With(domain.ErrCircularOverlay, "cycle", b.String())
}

// view is a View over one binding table snapshot.
type view struct {
	res   *resolution
	cells map[string]*cell
}

// Lookup returns the binding for name, forcing it if deferred.
func (v *view) Lookup(name string) (domain.PackageRef, error) {
	c, ok := v.cells[name]
	if !ok {
		return domain.PackageRef{}, zerr.With(domain.ErrBindingNotFound, "binding", name)
	}
	return v.res.force(name, c)
}

// Names returns the bound names in sorted order.
func (v *view) Names() []string {
	names := make([]string, 0, len(v.cells))
	for name := range v.cells {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func sortedBindingNames(bindings map[string]Thunk) []string {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
