package lightswitch

import (
	"lightstation/pkg/engine/scheduler"
	"lightstation/pkg/engine/world"
	"lightstation/pkg/game/entities"
	"lightstation/pkg/game/reach"
)

// Deps are the services a controller consumes
type Deps struct {
	Space     Space
	Rooms     RoomResolver
	Scheduler *scheduler.Scheduler
	Presenter Presenter
	Requester ToggleRequester
	Masks     Masks
	Timing    Timing
}

// Controller drives one switch. All methods must be called from the
// scheduler's tick goroutine.
type Controller struct {
	sw        *Switch
	space     Space
	rooms     RoomResolver
	sched     *scheduler.Scheduler
	presenter Presenter
	requester ToggleRequester
	masks     Masks
	timing    Timing
	query     *reach.Query
	listeners []Listener

	phase        Phase
	cooldown     *scheduler.Handle
	deferred     *scheduler.Handle
	soundAllowed bool
	started      bool
}

// NewController wires a switch to its services. Zero masks and timings fall back to defaults.
func NewController(sw *Switch, deps Deps) *Controller {
	if deps.Masks == (Masks{}) {
		deps.Masks = DefaultMasks()
	}
	if deps.Timing == (Timing{}) {
		deps.Timing = DefaultTiming()
	}
	return &Controller{
		sw:        sw,
		space:     deps.Space,
		rooms:     deps.Rooms,
		sched:     deps.Scheduler,
		presenter: deps.Presenter,
		requester: deps.Requester,
		masks:     deps.Masks,
		timing:    deps.Timing,
		query:     reach.NewQuery(deps.Space, deps.Masks.Lighting),
	}
}

// Switch returns the switch data
func (c *Controller) Switch() *Switch { return c.sw }

// ID returns the switch ID
func (c *Controller) ID() string { return c.sw.ID }

// IsOn returns the on/off flag
func (c *Controller) IsOn() bool { return c.sw.IsOn() }

// Phase returns the interaction phase
func (c *Controller) Phase() Phase { return c.phase }

// AddListener subscribes l to local state changes
func (c *Controller) AddListener(l Listener) {
	c.listeners = append(c.listeners, l)
}

// SetRequester routes toggles through r instead of toggling locally
func (c *Controller) SetRequester(r ToggleRequester) {
	c.requester = r
}

// SetPresenter replaces the presenter
func (c *Controller) SetPresenter(p Presenter) {
	c.presenter = p
}

// Restore sets the on flag without publishing or syncing. Only meaningful before Start.
func (c *Controller) Restore(on bool) {
	c.sw.Power.Set(on)
}

// Start resolves the power source, registers with it and pushes the current
// state to reachable lights. This counts as the first (silent) sync.
// Calling it again does nothing.
func (c *Controller) Start() {
	if c.started {
		return
	}
	c.resolvePowerSource(false)
	if apc := c.sw.APC; apc != nil {
		apc.RegisterSwitch(c.sw.ID)
	}
	c.Sync(c.sw.IsOn())
	c.started = true
}

// StartClient resolves the power source without publishing and schedules
// the one-time deferred re-application of the current state that covers
// late scene initialisation on a joining peer.
func (c *Controller) StartClient() {
	if c.deferred != nil {
		return
	}
	if apc := c.findPowerSource(); apc != nil {
		if !apc.HasSwitch(c.sw.ID) {
			apc.RegisterSwitch(c.sw.ID)
		}
	} else if !c.sw.SelfPowered {
		// The server publishes the forced-off state; a client only applies it.
		c.sw.Power.Set(false)
	}
	c.deferred = c.sched.After(c.timing.DeferredSync, func() {
		c.Sync(c.sw.IsOn())
	})
}

// Stop cancels pending timers and drops the switch's registration with its APC
func (c *Controller) Stop() {
	c.cooldown.Cancel()
	c.deferred.Cancel()
	c.cooldown = nil
	c.deferred = nil
	c.phase = Idle
	if apc := c.sw.APC; apc != nil {
		apc.UnregisterSwitch(c.sw.ID)
	}
}

// Interact handles a press. It always reports the press as handled; when a
// precondition fails the press simply has no effect.
func (c *Controller) Interact(actor Actor, position world.Vec2) bool {
	if actor == nil || !actor.IsInReach(position) {
		return true
	}
	if !c.sw.SelfPowered {
		apc := c.ResolvePowerSource()
		if apc == nil {
			return true
		}
		if apc.Voltage == 0 {
			return true
		}
	}
	if c.phase == CoolingDown {
		return true
	}

	c.phase = CoolingDown
	c.cooldown = c.sched.After(c.timing.Cooldown, func() {
		c.phase = Idle
		c.cooldown = nil
	})

	if c.requester != nil {
		c.requester.RequestToggle(c.sw.ID)
	} else {
		c.Toggle()
	}
	return true
}

// Toggle flips the switch, publishes the change and syncs reachable lights
func (c *Controller) Toggle() {
	c.setOn(!c.sw.IsOn())
}

// ApplyRemote applies a state that arrived from the authoritative peer.
// It syncs locally but does not publish.
func (c *Controller) ApplyRemote(on bool) {
	if c.sw.Power.Set(on) {
		c.Sync(on)
	}
}

// PowerNetworkUpdate feeds the APC's voltage into the power state.
// Self-powered switches ignore the grid.
func (c *Controller) PowerNetworkUpdate(voltage float64) {
	if c.sw.SelfPowered {
		return
	}
	if c.sw.Power.ApplyVoltage(voltage) {
		c.changed(c.sw.IsOn(), true)
	}
}

// ResolvePowerSource finds the switch's APC if it has none yet.
// A switch left without a power source that is not self-powered is forced off.
func (c *Controller) ResolvePowerSource() *entities.APC {
	return c.resolvePowerSource(c.started)
}

// AssignPowerSource binds the switch to apc and registers it there
func (c *Controller) AssignPowerSource(apc *entities.APC) {
	if c.sw.APC != nil {
		c.sw.APC.UnregisterSwitch(c.sw.ID)
	}
	c.sw.APC = apc
	if apc != nil {
		apc.RegisterSwitch(c.sw.ID)
	}
}

func (c *Controller) resolvePowerSource(sync bool) *entities.APC {
	if c.findPowerSource() == nil && !c.sw.SelfPowered && c.sw.Power.Set(false) {
		c.publish(false, true)
		if sync {
			c.Sync(false)
		}
	}
	return c.sw.APC
}

// findPowerSource binds the switch to the first APC serving its room
func (c *Controller) findPowerSource() *entities.APC {
	if c.sw.APC != nil {
		return c.sw.APC
	}

	thisRoom := c.roomNumber(c.sw.Position, c.sw.Facing)
	for _, b := range c.space.OverlapCircleAll(c.sw.CastPos(), c.sw.Radius, c.masks.Mounts) {
		if b.Tag != world.TagAPC {
			continue
		}
		apc, ok := b.Ref.(*entities.APC)
		if !ok {
			continue
		}
		// A switch outside any room takes the first APC it finds so it still works.
		if thisRoom == world.UnknownRoom || c.roomNumber(apc.Position, apc.Facing) == thisRoom {
			c.sw.APC = apc
			break
		}
	}
	return c.sw.APC
}

// roomNumber resolves the room a wall mount serves: the tile it faces
func (c *Controller) roomNumber(pos world.Vec2, facing world.Direction) int {
	if c.rooms == nil {
		return world.UnknownRoom
	}
	row, col := pos.Add(facing.Vector()).Tile()
	return c.rooms.RoomNumberAt(row, col)
}

// Sync is the local state hook: it notifies reachable lights, updates the
// switch visual and clicks (never on the first sync).
func (c *Controller) Sync(state bool) {
	c.detectLightsAndAction(state)

	if c.presenter != nil {
		if c.soundAllowed {
			c.presenter.PlayClick(c.sw.ID)
		}
		c.presenter.ShowSwitch(c.sw.ID, state)
	}
	c.soundAllowed = true
}

func (c *Controller) detectLightsAndAction(state bool) {
	id := c.sw.ID
	apc := c.sw.APC
	for _, b := range c.query.FindTargets(c.sw.CastPos(), c.sw.Radius, c.masks.Obstacles) {
		if b.Tag != world.TagEmergencyLight {
			if r, ok := b.Ref.(entities.LightStateReceiver); ok {
				r.ReceiveLightState(entities.LightSwitchData{State: state, SwitchID: id, APC: apc})
				if apc != nil {
					apc.ConnectLight(id, r)
				}
			}
		}
		// Emergency lights hear about the power source whatever the switch state.
		if apc != nil {
			if r, ok := b.Ref.(entities.EmergencyStateReceiver); ok {
				r.ReceiveEmergencyState(entities.LightSwitchData{SwitchID: id, APC: apc, SelfPowered: c.sw.SelfPowered})
			}
		}
	}
}

func (c *Controller) setOn(on bool) {
	if c.sw.Power.Set(on) {
		c.changed(on, false)
	}
}

func (c *Controller) changed(on, power bool) {
	c.publish(on, power)
	c.Sync(on)
}

func (c *Controller) publish(on, power bool) {
	change := StateChange{SwitchID: c.sw.ID, On: on, Power: power}
	for _, l := range c.listeners {
		l.SwitchChanged(change)
	}
}
