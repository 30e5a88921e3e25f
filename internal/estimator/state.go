package estimator

import "errors"

// GenericErrorMessage is shown for every failure that happens after the
// request leaves validation. The underlying cause is only logged.
const GenericErrorMessage = "An error occurred while fetching the data."

// Kind classifies a failed submission.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNetwork           Kind = "network"
	KindMalformedResponse Kind = "malformed_response"
)

// Failure is the user-facing error attached to the form state.
type Failure struct {
	Kind    Kind
	Field   Field // set for KindValidation only
	Message string
}

// Phase is the observable stage of the form controller.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseRequesting Phase = "requesting"
	PhaseSuccess    Phase = "success"
	PhaseFailed     Phase = "failed"
)

// State is everything the form page needs to render.
type State struct {
	Input   InputData
	Result  *ResultData
	Err     *Failure
	Loading bool
}

// Phase derives the controller phase from the state fields.
func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseRequesting
	case s.Err != nil:
		return PhaseFailed
	case s.Result != nil:
		return PhaseSuccess
	default:
		return PhaseIdle
	}
}

// Event is an input to Reduce.
type Event interface {
	event()
}

// FieldChanged overwrites one raw input value.
type FieldChanged struct {
	Field Field
	Value string
}

// SubmitStarted begins a submission cycle.
type SubmitStarted struct{}

// ValidationFailed ends a cycle before any request was sent.
type ValidationFailed struct {
	Err *ValidationError
}

// RequestSucceeded ends a cycle with a result.
type RequestSucceeded struct {
	Result ResultData
}

// RequestFailed ends a cycle after the request was attempted.
type RequestFailed struct {
	Err error
}

func (FieldChanged) event()     {}
func (SubmitStarted) event()    {}
func (ValidationFailed) event() {}
func (RequestSucceeded) event() {}
func (RequestFailed) event()    {}

// Reduce applies ev to s and returns the new state. s is not modified.
func Reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case FieldChanged:
		s.Input = s.Input.With(e.Field, e.Value)

	case SubmitStarted:
		s.Err = nil
		s.Result = nil
		s.Loading = true

	case ValidationFailed:
		s.Err = &Failure{Kind: KindValidation, Field: e.Err.Field, Message: e.Err.Error()}
		s.Loading = false

	case RequestSucceeded:
		r := e.Result
		s.Result = &r
		s.Err = nil
		s.Loading = false

	case RequestFailed:
		s.Err = &Failure{Kind: classify(e.Err), Message: GenericErrorMessage}
		s.Result = nil
		s.Loading = false
	}
	return s
}

// ErrMalformedResponse marks a response body that does not carry the eleven
// numeric result fields.
var ErrMalformedResponse = errors.New("malformed calculation response")

func classify(err error) Kind {
	if errors.Is(err, ErrMalformedResponse) {
		return KindMalformedResponse
	}
	return KindNetwork
}
