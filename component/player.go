package component

// PlayerIdx identifies which of the MAX_PLAYERS input slots controls this
// entity (spec §4.8).
type PlayerIdx struct {
	Index uint8
}

// PlayerStateID names a state in the player state machine (spec §4.7).
// Using a string id rather than an enum keeps the state machine stage
// open to externally-registered states without a central enum edit, the
// way the teacher's fsm package keys states by name.
type PlayerStateID string

const (
	StateIdle          PlayerStateID = "idle"
	StateWalk          PlayerStateID = "walk"
	StateMidair        PlayerStateID = "midair"
	StateCrouch        PlayerStateID = "crouch"
	StateIncapacitated PlayerStateID = "incapacitated"
	StateDead          PlayerStateID = "dead"
)

// PlayerState is the per-player state machine component (spec §4.7):
// holds the current state id, the previous one (PrevID) and the time spent
// in the current state (TimeInState). Transition systems may overwrite ID;
// handler systems read it to decide which per-state logic runs.
type PlayerState struct {
	ID           PlayerStateID
	TimeInState  float64
	PrevID       PlayerStateID
}
