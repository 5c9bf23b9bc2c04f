package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies a toggleable layer.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayGrid      OverlayID = "grid"
	OverlayParticles OverlayID = "particles"
	OverlayObstacle  OverlayID = "obstacle"
	OverlayControls  OverlayID = "controls"
	OverlayPerf      OverlayID = "perf"
)

// OverlayDescriptor defines a layer that can be toggled.
type OverlayDescriptor struct {
	ID       OverlayID // Unique identifier
	Name     string    // Display name
	Key      int32     // Keyboard key to toggle (0 = no key)
	KeyLabel string    // Key label for display (e.g., "G")
	Default  bool      // Enabled at startup
}

// OverlayRegistry manages layer state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the standard layers.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{ID: OverlayGrid, Name: "Grid", Key: rl.KeyG, KeyLabel: "G", Default: true})
	r.Register(OverlayDescriptor{ID: OverlayParticles, Name: "Particles", Key: rl.KeyP, KeyLabel: "P", Default: true})
	r.Register(OverlayDescriptor{ID: OverlayObstacle, Name: "Obstacle", Key: rl.KeyO, KeyLabel: "O", Default: true})
	r.Register(OverlayDescriptor{ID: OverlayControls, Name: "Controls", Key: rl.KeyTab, KeyLabel: "Tab", Default: true})
	r.Register(OverlayDescriptor{ID: OverlayPerf, Name: "Perf", Key: rl.KeyF3, KeyLabel: "F3"})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// HandleKeys toggles every overlay whose key was pressed this frame.
func (r *OverlayRegistry) HandleKeys() {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			r.Toggle(desc.ID)
		}
	}
}
