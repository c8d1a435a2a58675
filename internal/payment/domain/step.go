package domain

// Step is one state of the payment workflow. The set of implementations is closed.
type Step interface {
	Name() string
	step()
}

// Step names.
const (
	StepForm       = "form"
	StepReview     = "review"
	StepCreating   = "creating"
	StepConfirm    = "confirm"
	StepConfirming = "confirming"
	StepSuccess    = "success"
)

// FormStep collects payment input.
type FormStep struct{}

// ReviewStep shows validated input before a draft exists.
type ReviewStep struct {
	Input PaymentInput
}

// CreatingStep waits for the server to create a draft.
type CreatingStep struct {
	Input PaymentInput
}

// ConfirmStep shows the draft reference and asks for confirmation.
type ConfirmStep struct {
	Input PaymentInput
	Draft Draft
}

// ConfirmingStep waits for the server to post the draft.
type ConfirmingStep struct {
	Input PaymentInput
	Draft Draft
}

// SuccessStep holds the posted payment.
type SuccessStep struct {
	Input PaymentInput
	Draft Draft
}

func (FormStep) Name() string       { return StepForm }
func (ReviewStep) Name() string     { return StepReview }
func (CreatingStep) Name() string   { return StepCreating }
func (ConfirmStep) Name() string    { return StepConfirm }
func (ConfirmingStep) Name() string { return StepConfirming }
func (SuccessStep) Name() string    { return StepSuccess }

func (FormStep) step()       {}
func (ReviewStep) step()     {}
func (CreatingStep) step()   {}
func (ConfirmStep) step()    {}
func (ConfirmingStep) step() {}
func (SuccessStep) step()    {}

// Actions available to the user, by name.
const (
	ActionReview  = "review"
	ActionBack    = "back"
	ActionCreate  = "create"
	ActionConfirm = "confirm"
	ActionReset   = "reset"
)

// ActionsFor lists the user actions valid in step.
func ActionsFor(step Step) []string {
	switch step.(type) {
	case FormStep:
		return []string{ActionReview, ActionCreate}
	case ReviewStep:
		return []string{ActionCreate, ActionBack, ActionReset}
	case ConfirmStep:
		return []string{ActionConfirm, ActionReset}
	case SuccessStep:
		return []string{ActionReset}
	default:
		return []string{}
	}
}

// IsProcessing reports whether a network call is in flight in step.
func IsProcessing(step Step) bool {
	switch step.(type) {
	case CreatingStep, ConfirmingStep:
		return true
	default:
		return false
	}
}
