package tui

import "sync"

// Region is a rectangle in terminal cells.
type Region struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether r has no area.
func (r Region) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// PointerRegistry tracks the on-screen bounds of every open dropdown so a
// pointer press anywhere can close the dropdowns it missed. An entry exists
// exactly while its dropdown is open.
type PointerRegistry struct {
	mu      sync.Mutex
	order   []string
	regions map[string]Region
}

// NewPointerRegistry returns an empty registry.
func NewPointerRegistry() *PointerRegistry {
	return &PointerRegistry{regions: make(map[string]Region)}
}

// Register adds or replaces the entry for id.
func (p *PointerRegistry) Register(id string, r Region) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.regions[id]; !ok {
		p.order = append(p.order, id)
	}
	p.regions[id] = r
}

// Move updates the bounds of a registered id. Unknown ids are ignored.
func (p *PointerRegistry) Move(id string, r Region) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.regions[id]; ok {
		p.regions[id] = r
	}
}

// Unregister removes id.
func (p *PointerRegistry) Unregister(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.regions[id]; !ok {
		return
	}
	delete(p.regions, id)
	for i, v := range p.order {
		if v == id {
			p.order = append(p.order[:i:i], p.order[i+1:]...)
			break
		}
	}
}

// Registered reports whether id has an entry.
func (p *PointerRegistry) Registered(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.regions[id]
	return ok
}

// Outside returns, in registration order, every id whose region does not
// contain (x, y).
func (p *PointerRegistry) Outside(x, y int) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var ids []string
	for _, id := range p.order {
		if !p.regions[id].Contains(x, y) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Len returns the number of registered ids.
func (p *PointerRegistry) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.order)
}
