/*
 * MIT License
 *
 * Copyright (c) 2022-2025  Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package actor

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/cchandler/akka/actorerrors"
	"github.com/cchandler/akka/internal/registry"
	"github.com/cchandler/akka/internal/xsync"
)

// Registry is the process-wide index of every live Handle, keyed by
// ActorID, ActorTag, and concrete Actor implementation type. Spawn
// registers into it; Stop removes from it.
type Registry struct {
	byID *xsync.Map[ActorID, Handle]

	mu         sync.RWMutex
	byTag      map[ActorTag]mapset.Set[ActorID]
	byImplName map[string]mapset.Set[ActorID]
	types      registry.Registry
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:       xsync.NewMap[ActorID, Handle](),
		byTag:      make(map[ActorTag]mapset.Set[ActorID]),
		byImplName: make(map[string]mapset.Set[ActorID]),
		types:      registry.NewRegistry(),
	}
}

// Register adds h under its ID, tag, and the implementation type of
// sample (typically a fresh instance obtained from h's Factory). Returns
// actorerrors.NewErrActorAlreadyExists if h.ID() is already registered.
func (r *Registry) Register(h Handle, sample Actor) error {
	if _, exists := r.byID.Get(h.ID()); exists {
		return actorerrors.NewErrActorAlreadyExists(h.ID())
	}
	r.byID.Set(h.ID(), h)

	implName := registry.Name(sample)
	r.types.Register(sample)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byTag[h.Tag()] == nil {
		r.byTag[h.Tag()] = mapset.NewSet[ActorID]()
	}
	r.byTag[h.Tag()].Add(h.ID())
	if r.byImplName[implName] == nil {
		r.byImplName[implName] = mapset.NewSet[ActorID]()
	}
	r.byImplName[implName].Add(h.ID())
	return nil
}

// RegisterExternal adds h under its ID and tag only, skipping the
// implementation-type index: used for a remote proxy, whose concrete
// Actor type is not known to this process.
func (r *Registry) RegisterExternal(h Handle) error {
	if _, exists := r.byID.Get(h.ID()); exists {
		return actorerrors.NewErrActorAlreadyExists(h.ID())
	}
	r.byID.Set(h.ID(), h)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byTag[h.Tag()] == nil {
		r.byTag[h.Tag()] = mapset.NewSet[ActorID]()
	}
	r.byTag[h.Tag()].Add(h.ID())
	return nil
}

// Unregister removes h from every index.
func (r *Registry) Unregister(h Handle) {
	r.byID.Delete(h.ID())

	r.mu.Lock()
	defer r.mu.Unlock()
	if set, ok := r.byTag[h.Tag()]; ok {
		set.Remove(h.ID())
		if set.Cardinality() == 0 {
			delete(r.byTag, h.Tag())
		}
	}
	for name, set := range r.byImplName {
		if set.Contains(h.ID()) {
			set.Remove(h.ID())
			if set.Cardinality() == 0 {
				delete(r.byImplName, name)
			}
		}
	}
}

// FindByID returns the Handle registered under id, if any.
func (r *Registry) FindByID(id ActorID) (Handle, bool) {
	return r.byID.Get(id)
}

// FindByTag returns every Handle currently registered under tag.
func (r *Registry) FindByTag(tag ActorTag) []Handle {
	r.mu.RLock()
	ids, ok := r.byTag[tag]
	if !ok {
		r.mu.RUnlock()
		return nil
	}
	out := make([]Handle, 0, ids.Cardinality())
	for _, id := range ids.ToSlice() {
		if h, ok := r.byID.Get(id); ok {
			out = append(out, h)
		}
	}
	r.mu.RUnlock()
	return out
}

// FindByImplementation returns every Handle whose registered Actor sample
// shares sample's concrete type.
func (r *Registry) FindByImplementation(sample Actor) []Handle {
	name := registry.Name(sample)
	r.mu.RLock()
	ids, ok := r.byImplName[name]
	if !ok {
		r.mu.RUnlock()
		return nil
	}
	out := make([]Handle, 0, ids.Cardinality())
	for _, id := range ids.ToSlice() {
		if h, ok := r.byID.Get(id); ok {
			out = append(out, h)
		}
	}
	r.mu.RUnlock()
	return out
}
