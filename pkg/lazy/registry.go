package lazy

import "unveil/pkg/html"

// registry owns the set of tracked elements and their info records. The
// info map doubles as the O(1) "already tracked" check; the slice keeps
// registration order for iteration.
type registry struct {
	elements []*html.Node
	info     map[*html.Node]*ElementInfo
}

func newRegistry() *registry {
	return &registry{info: make(map[*html.Node]*ElementInfo)}
}

func (r *registry) empty() bool {
	return len(r.elements) == 0
}

func (r *registry) get(el *html.Node) (*ElementInfo, bool) {
	info, ok := r.info[el]
	return info, ok
}

// add appends a new tracked element. The caller must have checked that the
// element is not already tracked.
func (r *registry) add(el *html.Node, info *ElementInfo) {
	r.elements = append(r.elements, el)
	r.info[el] = info
}

// remove drops the element and clears its info record. Removing an
// untracked element is a no-op.
func (r *registry) remove(el *html.Node) {
	if _, ok := r.info[el]; !ok {
		return
	}
	delete(r.info, el)
	for i, cand := range r.elements {
		if cand == el {
			r.elements = append(r.elements[:i], r.elements[i+1:]...)
			return
		}
	}
}

func (r *registry) clear() {
	r.elements = nil
	r.info = make(map[*html.Node]*ElementInfo)
}

// snapshot returns a stable copy of the tracked elements, safe to iterate
// while asynchronous completions deregister entries.
func (r *registry) snapshot() []*html.Node {
	out := make([]*html.Node, len(r.elements))
	copy(out, r.elements)
	return out
}
