package domain

// Step is one state of the deal workflow. The set of implementations is closed.
type Step interface {
	Name() string
	step()
}

// Step names.
const (
	StepForm    = "form"
	StepQuoting = "quoting"
	StepQuote   = "quote"
	StepBooking = "booking"
	StepSuccess = "success"
	StepExpired = "expired"
)

// FormStep collects a quote request.
type FormStep struct{}

// QuotingStep waits for the server to price Request.
type QuotingStep struct {
	Request QuoteRequest
}

// QuoteStep shows a live quote with its countdown.
type QuoteStep struct {
	Quote Quote
}

// BookingStep waits for the server to book Quote. The countdown keeps running.
type BookingStep struct {
	Quote Quote
}

// SuccessStep holds the booked deal.
type SuccessStep struct {
	Quote Quote
	Deal  Deal
}

// ExpiredStep holds the quote that ran out before it was booked.
type ExpiredStep struct {
	Quote Quote
}

func (FormStep) Name() string    { return StepForm }
func (QuotingStep) Name() string { return StepQuoting }
func (QuoteStep) Name() string   { return StepQuote }
func (BookingStep) Name() string { return StepBooking }
func (SuccessStep) Name() string { return StepSuccess }
func (ExpiredStep) Name() string { return StepExpired }

func (FormStep) step()    {}
func (QuotingStep) step() {}
func (QuoteStep) step()   {}
func (BookingStep) step() {}
func (SuccessStep) step() {}
func (ExpiredStep) step() {}

// Actions available to the user, by name.
const (
	ActionRequestQuote = "request_quote"
	ActionBook         = "book"
	ActionCancel       = "cancel"
	ActionReset        = "reset"
)

// ActionsFor lists the user actions valid in step.
func ActionsFor(step Step) []string {
	switch step.(type) {
	case FormStep:
		return []string{ActionRequestQuote}
	case QuoteStep:
		return []string{ActionBook, ActionCancel}
	case SuccessStep, ExpiredStep:
		return []string{ActionReset}
	default:
		return []string{}
	}
}

// ActiveQuote returns the quote a step carries, if any.
func ActiveQuote(step Step) (Quote, bool) {
	switch s := step.(type) {
	case QuoteStep:
		return s.Quote, true
	case BookingStep:
		return s.Quote, true
	case SuccessStep:
		return s.Quote, true
	case ExpiredStep:
		return s.Quote, true
	default:
		return Quote{}, false
	}
}
