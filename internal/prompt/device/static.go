package device

import (
	"sync"

	"github.com/dshills/glyphprompt/internal/prompt/fold"
)

// Spec describes a device to add to a StaticProvider.
type Spec struct {
	Name       string
	Categories CategorySet
	Usages     []string
	Controls   []Control
}

type staticDevice struct {
	info       Info
	categories CategorySet
	controls   []Control
}

// StaticProvider is a Provider whose devices are added and removed by the
// caller. Hosts without a native device layer and tests use it.
type StaticProvider struct {
	mu      sync.RWMutex
	devices []staticDevice
	nextID  ID
}

// NewStaticProvider creates an empty provider.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{nextID: 1}
}

// Add connects a device and returns its info. Devices enumerate in the order
// they were added.
func (p *StaticProvider) Add(spec Spec) Info {
	p.mu.Lock()
	defer p.mu.Unlock()

	info := Info{
		ID:     p.nextID,
		Name:   spec.Name,
		Usages: append([]string(nil), spec.Usages...),
	}
	p.nextID++

	p.devices = append(p.devices, staticDevice{
		info:       info,
		categories: spec.Categories,
		controls:   append([]Control(nil), spec.Controls...),
	})
	return info
}

// Remove disconnects a device. It reports whether the device was connected.
func (p *StaticProvider) Remove(id ID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, d := range p.devices {
		if d.info.ID == id {
			p.devices = append(p.devices[:i], p.devices[i+1:]...)
			return true
		}
	}
	return false
}

// Device returns a connected device by ID.
func (p *StaticProvider) Device(id ID) (Info, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if d := p.find(id); d != nil {
		return d.info, true
	}
	return Info{}, false
}

// DeviceNamed returns the first connected device with the given identity.
func (p *StaticProvider) DeviceNamed(name string) (Info, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, d := range p.devices {
		if fold.Equal(d.info.Name, name) {
			return d.info, true
		}
	}
	return Info{}, false
}

// Devices implements Provider.
func (p *StaticProvider) Devices() []Info {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]Info, len(p.devices))
	for i, d := range p.devices {
		out[i] = d.info
	}
	return out
}

// Categories implements Provider.
func (p *StaticProvider) Categories(id ID) CategorySet {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if d := p.find(id); d != nil {
		return d.categories
	}
	return 0
}

// Controls implements Provider.
func (p *StaticProvider) Controls(id ID) []Control {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if d := p.find(id); d != nil {
		return append([]Control(nil), d.controls...)
	}
	return nil
}

// find must be called with the lock held.
func (p *StaticProvider) find(id ID) *staticDevice {
	for i := range p.devices {
		if p.devices[i].info.ID == id {
			return &p.devices[i]
		}
	}
	return nil
}
