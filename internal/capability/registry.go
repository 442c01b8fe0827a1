package capability

import (
	"cmp"
	"slices"
	"sync"

	"enumarg-generator/internal/enum"
	"enumarg-generator/internal/gen"
)

// Entry is one enum's realized capabilities at one width.
type Entry struct {
	PkgPath      string
	Enum         string
	Width        enum.Width
	Capabilities []enum.Capability
}

type key struct {
	pkgPath string
	name    string
	width   enum.Width
}

// Registry is a concurrency-safe set of realized capabilities.
type Registry struct {
	mu      sync.RWMutex
	entries map[key][]enum.Capability
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[key][]enum.Capability)}
}

// Register records the capabilities realized by a.
func (r *Registry) Register(a *gen.Artifacts) {
	r.Add(Entry{
		PkgPath:      a.Enum.PkgPath(),
		Enum:         a.Enum.Name(),
		Width:        a.Enum.Width(),
		Capabilities: a.Capabilities,
	})
}

// Add merges e into the registry.
func (r *Registry) Add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key{pkgPath: e.PkgPath, name: e.Enum, width: e.Width}
	caps := r.entries[k]

	for _, c := range e.Capabilities {
		if !slices.Contains(caps, c) {
			caps = append(caps, c)
		}
	}

	slices.Sort(caps)
	r.entries[k] = caps
}

// Forget drops whatever is recorded for the enum at width w.
func (r *Registry) Forget(pkgPath, name string, w enum.Width) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, key{pkgPath: pkgPath, name: name, width: w})
}

// Implements reports whether the enum realizes c at width w.
func (r *Registry) Implements(pkgPath, name string, w enum.Width, c enum.Capability) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Contains(r.entries[key{pkgPath: pkgPath, name: name, width: w}], c)
}

// Missing returns the capabilities d still lacks, in enum.Capabilities order.
func (r *Registry) Missing(d enum.Descriptor) []enum.Capability {
	var missing []enum.Capability
	for _, c := range enum.Capabilities {
		if !r.Implements(d.PkgPath, d.Name, d.Width, c) {
			missing = append(missing, c)
		}
	}

	return missing
}

// EnumsInto returns the names of enums convertible into an integer of
// width w, sorted and without duplicates.
func (r *Registry) EnumsInto(w enum.Width) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for k, caps := range r.entries {
		if k.width == w && slices.Contains(caps, enum.IntegerFromEnum) {
			names = append(names, k.name)
		}
	}

	slices.Sort(names)

	return slices.Compact(names)
}

// Entries returns a snapshot sorted by package, enum and width.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.entries))
	for k, caps := range r.entries {
		out = append(out, Entry{
			PkgPath:      k.pkgPath,
			Enum:         k.name,
			Width:        k.width,
			Capabilities: slices.Clone(caps),
		})
	}

	slices.SortFunc(out, func(a, b Entry) int {
		return cmp.Or(
			cmp.Compare(a.PkgPath, b.PkgPath),
			cmp.Compare(a.Enum, b.Enum),
			cmp.Compare(a.Width, b.Width),
		)
	})

	return out
}

// Len returns the number of recorded entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}
