// Package pinpad implements the PIN entry state machine that gates parent
// mode, the time-warp bypass and the PIN-change wizard.
package pinpad

// PINLength is the number of digits compared per attempt
const PINLength = 4

// State is the machine's position in an entry flow
type State string

const (
	StateIdle            State = "idle"
	StateEnteringUnlock  State = "enteringUnlock"
	StateAwaitingCurrent State = "awaitingCurrent"
	StateAwaitingNew     State = "awaitingNew"
	StateVerifyingNew    State = "verifyingNew"
	StateConfirmed       State = "confirmed"
)

// Target is what a successful unlock grants
type Target string

const (
	TargetNone     Target = ""
	TargetParent   Target = "parent"
	TargetTimeWarp Target = "timeWarp"
)

// Outcome classifies the effect of a key press
type Outcome int

const (
	// OutcomeIgnored means the press was not accepted
	OutcomeIgnored Outcome = iota
	// OutcomeBuffered means the digit was stored and more are needed
	OutcomeBuffered
	// OutcomeUnlocked means the PIN matched and Result.Target is granted
	OutcomeUnlocked
	// OutcomeMismatch means the attempt was rejected. The buffer stays full
	// until ClearFailedAttempt so the UI can show the failed entry.
	OutcomeMismatch
	// OutcomeAdvanced means the change wizard moved to its next step
	OutcomeAdvanced
	// OutcomeChanged means the new PIN was verified and stored
	OutcomeChanged
)

func (o Outcome) String() string {
	switch o {
	case OutcomeBuffered:
		return "buffered"
	case OutcomeUnlocked:
		return "unlocked"
	case OutcomeMismatch:
		return "mismatch"
	case OutcomeAdvanced:
		return "advanced"
	case OutcomeChanged:
		return "changed"
	}
	return "ignored"
}

// Result reports what a key press did
type Result struct {
	Outcome Outcome
	// State is the state the press ended in. For OutcomeChanged it is
	// StateConfirmed even though the machine has already returned to idle.
	State  State
	Target Target
	Err    error
}

// Secret is the stored PIN the machine checks against and replaces
type Secret interface {
	Verify(pin string) bool
	Replace(pin string) error
}

// Machine accumulates digits and drives the unlock and change flows. It is not
// safe for concurrent use.
type Machine struct {
	secret    Secret
	state     State
	target    Target
	buffer    []byte
	candidate string
	failed    bool
}

// New creates an idle machine
func New(secret Secret) *Machine {
	return &Machine{secret: secret, state: StateIdle}
}

// State returns the current state
func (m *Machine) State() State {
	return m.state
}

// Target returns the pending unlock target
func (m *Machine) Target() Target {
	return m.target
}

// Entered returns how many digits are buffered
func (m *Machine) Entered() int {
	return len(m.buffer)
}

// Failed reports whether the buffer holds a rejected attempt
func (m *Machine) Failed() bool {
	return m.failed
}

// BeginUnlock starts PIN entry for target. It only works from idle.
func (m *Machine) BeginUnlock(target Target) bool {
	if m.state != StateIdle || (target != TargetParent && target != TargetTimeWarp) {
		return false
	}
	m.reset()
	m.state = StateEnteringUnlock
	m.target = target
	return true
}

// BeginChange starts the PIN-change wizard. It only works from idle.
func (m *Machine) BeginChange() bool {
	if m.state != StateIdle {
		return false
	}
	m.reset()
	m.state = StateAwaitingCurrent
	return true
}

// Cancel abandons any flow and returns to idle
func (m *Machine) Cancel() {
	m.reset()
	m.state = StateIdle
}

// ClearFailedAttempt empties the buffer after a mismatch so entry can resume
func (m *Machine) ClearFailedAttempt() {
	if !m.failed {
		return
	}
	m.buffer = m.buffer[:0]
	m.failed = false
}

// Backspace removes the last buffered digit
func (m *Machine) Backspace() {
	if m.failed || len(m.buffer) == 0 {
		return
	}
	m.buffer = m.buffer[:len(m.buffer)-1]
}

// Press feeds one digit into the current flow
func (m *Machine) Press(digit rune) Result {
	if !m.accepting() || digit < '0' || digit > '9' {
		return Result{Outcome: OutcomeIgnored, State: m.state}
	}

	m.buffer = append(m.buffer, byte(digit))
	if len(m.buffer) < PINLength {
		return Result{Outcome: OutcomeBuffered, State: m.state}
	}

	entered := string(m.buffer)
	switch m.state {
	case StateEnteringUnlock:
		return m.submitUnlock(entered)
	case StateAwaitingCurrent:
		return m.submitCurrent(entered)
	case StateAwaitingNew:
		return m.submitNew(entered)
	case StateVerifyingNew:
		return m.submitVerify(entered)
	}
	return Result{Outcome: OutcomeIgnored, State: m.state}
}

// Enter presses the digits of pin in order until one press completes or
// rejects an attempt, and returns that press's result
func (m *Machine) Enter(pin string) Result {
	result := Result{Outcome: OutcomeIgnored, State: m.state}
	for _, digit := range pin {
		result = m.Press(digit)
		if result.Outcome != OutcomeBuffered {
			break
		}
	}
	return result
}

func (m *Machine) accepting() bool {
	if m.failed || len(m.buffer) >= PINLength {
		return false
	}
	switch m.state {
	case StateEnteringUnlock, StateAwaitingCurrent, StateAwaitingNew, StateVerifyingNew:
		return true
	}
	return false
}

func (m *Machine) submitUnlock(entered string) Result {
	if !m.secret.Verify(entered) {
		return m.mismatch()
	}
	target := m.target
	m.reset()
	m.state = StateIdle
	return Result{Outcome: OutcomeUnlocked, State: StateIdle, Target: target}
}

func (m *Machine) submitCurrent(entered string) Result {
	if !m.secret.Verify(entered) {
		return m.mismatch()
	}
	m.buffer = m.buffer[:0]
	m.state = StateAwaitingNew
	return Result{Outcome: OutcomeAdvanced, State: m.state}
}

func (m *Machine) submitNew(entered string) Result {
	m.candidate = entered
	m.buffer = m.buffer[:0]
	m.state = StateVerifyingNew
	return Result{Outcome: OutcomeAdvanced, State: m.state}
}

func (m *Machine) submitVerify(entered string) Result {
	if entered != m.candidate {
		m.candidate = ""
		m.state = StateAwaitingNew
		return m.mismatch()
	}

	if err := m.secret.Replace(m.candidate); err != nil {
		m.Cancel()
		return Result{Outcome: OutcomeIgnored, State: StateIdle, Err: err}
	}

	m.reset()
	m.state = StateIdle
	return Result{Outcome: OutcomeChanged, State: StateConfirmed}
}

func (m *Machine) mismatch() Result {
	m.failed = true
	return Result{Outcome: OutcomeMismatch, State: m.state, Target: m.target}
}

func (m *Machine) reset() {
	m.buffer = m.buffer[:0]
	m.candidate = ""
	m.target = TargetNone
	m.failed = false
}
