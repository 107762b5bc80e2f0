package app

import (
	"log"
	"time"

	"stickermissions/internal/pinpad"
)

// BeginUnlock starts PIN entry. A time-warp needs an active mission.
func (a *App) BeginUnlock(target pinpad.Target) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if target == pinpad.TargetTimeWarp {
		if _, ok := a.missions.Active(); !ok {
			return false
		}
	}
	if !a.pad.BeginUnlock(target) {
		return false
	}
	a.stopClear()
	return true
}

// BeginPINChange starts the PIN-change wizard
func (a *App) BeginPINChange() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.pad.BeginChange() {
		return false
	}
	a.stopClear()
	return true
}

// PressDigit feeds one key to the PIN pad and applies an unlock
func (a *App) PressDigit(digit rune) pinpad.Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.applyPIN(a.pad.Press(digit))
}

// Backspace removes the last PIN digit
func (a *App) Backspace() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pad.Backspace()
}

// CancelPIN abandons PIN entry
func (a *App) CancelPIN() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resetPad()
}

func (a *App) resetPad() {
	a.stopClear()
	a.pad.Cancel()
}

// PINState returns the pad's state and how many digits are entered
func (a *App) PINState() (pinpad.State, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pad.State(), a.pad.Entered()
}

func (a *App) applyPIN(result pinpad.Result) pinpad.Result {
	switch result.Outcome {
	case pinpad.OutcomeUnlocked:
		switch result.Target {
		case pinpad.TargetParent:
			a.parentUnlocked = true
			log.Println("Parent mode unlocked")
		case pinpad.TargetTimeWarp:
			if active, ok := a.missions.Active(); ok {
				a.completeLocked(active.ID, true)
			}
		}
	case pinpad.OutcomeMismatch:
		a.scheduleClear()
	}
	if result.Err != nil {
		log.Printf("Error storing new PIN: %v", result.Err)
	}
	return result
}

// scheduleClear empties a rejected entry after the configured delay. Only the
// latest failure's timer may clear the pad.
func (a *App) scheduleClear() {
	a.stopClear()
	gen := a.pinClearGen
	a.pinClear = time.AfterFunc(a.cfg.PINFailDelay, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if gen != a.pinClearGen {
			return
		}
		a.pinClear = nil
		a.pad.ClearFailedAttempt()
	})
}

// stopClear drops any pending clear from an earlier failure
func (a *App) stopClear() {
	a.pinClearGen++
	if a.pinClear != nil {
		a.pinClear.Stop()
		a.pinClear = nil
	}
}

// Unlock enters a whole PIN for target. A mismatch resets the pad at once so
// the caller can retry.
func (a *App) Unlock(target pinpad.Target, pin string) error {
	if !a.BeginUnlock(target) {
		if target == pinpad.TargetTimeWarp {
			return ErrNoActive
		}
		return ErrPINFlowBlocked
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	result := a.enterLocked(pin)
	if result.Outcome != pinpad.OutcomeUnlocked {
		a.resetPad()
		return ErrPINMismatch
	}
	return nil
}

// ChangePIN runs the whole change wizard: current PIN, new PIN, confirmation
func (a *App) ChangePIN(current, next, confirm string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.pad.BeginChange() {
		return ErrPINFlowBlocked
	}
	a.stopClear()
	defer a.resetPad()

	for _, entry := range []string{current, next, confirm} {
		result := a.enterLocked(entry)
		switch result.Outcome {
		case pinpad.OutcomeChanged:
			return nil
		case pinpad.OutcomeAdvanced:
			continue
		default:
			if result.Err != nil {
				return result.Err
			}
			return ErrPINMismatch
		}
	}
	return ErrPINMismatch
}

func (a *App) enterLocked(pin string) pinpad.Result {
	if len(pin) != pinpad.PINLength {
		a.pad.Cancel()
		return pinpad.Result{Outcome: pinpad.OutcomeMismatch, State: pinpad.StateIdle}
	}
	return a.applyPIN(a.pad.Enter(pin))
}

// LockParent leaves parent mode
func (a *App) LockParent() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.parentUnlocked = false
}

// ParentUnlocked reports whether parent-only operations are allowed
func (a *App) ParentUnlocked() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.parentUnlocked
}

// IssueParentGrant returns a token that unlocks parent mode in later sessions
// until it expires or the PIN changes. Parent only.
func (a *App) IssueParentGrant() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.requireParent(); err != nil {
		return "", err
	}
	return a.pins.IssueParentGrant()
}

// AuthorizeGrant unlocks parent mode with a token from IssueParentGrant
func (a *App) AuthorizeGrant(token string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.pins.VerifyParentGrant(token); err != nil {
		return err
	}
	a.parentUnlocked = true
	return nil
}
