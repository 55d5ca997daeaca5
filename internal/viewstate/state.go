// internal/viewstate/state.go
package viewstate

// Phase is the screen load state machine: Idle -> Loading -> Success or
// Error. There is no retry state; Error screens may still show stale data.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

const genericErrorMessage = "An unexpected error occurred"

// notify is a best-effort change signal: the renderer re-reads State()
// when it fires, so collapsing bursts into one signal is fine.
func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
