package world

import (
	"github.com/mlange-42/ark/ecs"
)

// LightState is the status light shown on top of a module.
type LightState uint8

const (
	LightOff   LightState = iota
	LightError            // interrupted by tech support
	LightPass             // module solved
)

// Module is the ECS component holding a bomb module's gameplay state.
type Module struct {
	Name   string
	Solved bool
	// busy replaces the module's own interaction while it is interrupted.
	busy func()
}

// Light is the ECS component for a module's status light.
type Light struct {
	State LightState
}

// Bomb is the host side of a session: every module is an entity.
type Bomb struct {
	Name   string
	Serial string

	ECS      *ecs.World
	modules  *ecs.Map[Module]
	lights   *ecs.Map[Light]
	entities []ecs.Entity
}

// NewBomb materialises a layout into an ECS world.
func NewBomb(layout *BombLayout) *Bomb {
	w := ecs.NewWorld(64)

	b := &Bomb{
		Name:    layout.Name,
		Serial:  layout.Serial,
		ECS:     w,
		modules: ecs.NewMap[Module](w),
		lights:  ecs.NewMap[Light](w),
	}

	builder := ecs.NewMap2[Module, Light](w)
	for _, def := range layout.Modules {
		light := LightOff
		if def.Solved {
			light = LightPass
		}
		e := builder.NewEntity(
			&Module{Name: def.Name, Solved: def.Solved},
			&Light{State: light},
		)
		b.entities = append(b.entities, e)
	}
	return b
}

// Modules returns a handle per module, in layout order.
func (b *Bomb) Modules() []*BombModule {
	out := make([]*BombModule, len(b.entities))
	for i, e := range b.entities {
		out[i] = &BombModule{bomb: b, entity: e}
	}
	return out
}

// Unsolved counts modules that are not solved yet.
func (b *Bomb) Unsolved() int {
	n := 0
	for _, e := range b.entities {
		if !b.modules.Get(e).Solved {
			n++
		}
	}
	return n
}

// BombModule is a handle to one module entity. It satisfies game.Task.
type BombModule struct {
	bomb   *Bomb
	entity ecs.Entity
}

// Name returns the module's display name.
func (m *BombModule) Name() string { return m.bomb.modules.Get(m.entity).Name }

// IsSolved reports whether the module has been solved.
func (m *BombModule) IsSolved() bool { return m.bomb.modules.Get(m.entity).Solved }

// Light returns the module's status light.
func (m *BombModule) Light() LightState { return m.bomb.lights.Get(m.entity).State }

// Busy reports whether tech support currently holds the module.
func (m *BombModule) Busy() bool { return m.bomb.modules.Get(m.entity).busy != nil }

// DisableInteraction swaps the module's interaction for busy and shows the
// error light.
func (m *BombModule) DisableInteraction(busy func()) {
	m.bomb.modules.Get(m.entity).busy = busy
	m.bomb.lights.Get(m.entity).State = LightError
}

// RestoreInteraction gives the module its own interaction back.
func (m *BombModule) RestoreInteraction() {
	m.bomb.modules.Get(m.entity).busy = nil
}

// MarkReleased turns the error light off again.
func (m *BombModule) MarkReleased() {
	light := m.bomb.lights.Get(m.entity)
	if light.State == LightError {
		light.State = LightOff
	}
}

// Interact is what the player does to a module. While the module is held it
// only triggers the busy handler and returns false.
func (m *BombModule) Interact() bool {
	mod := m.bomb.modules.Get(m.entity)
	if mod.busy != nil {
		mod.busy()
		return false
	}
	return true
}

// Solve marks the module solved. A held module cannot be solved.
func (m *BombModule) Solve() bool {
	mod := m.bomb.modules.Get(m.entity)
	if mod.busy != nil || mod.Solved {
		return false
	}
	mod.Solved = true
	m.bomb.lights.Get(m.entity).State = LightPass
	return true
}
