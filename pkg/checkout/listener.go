package checkout

// Listener receives checkout results. It is required by [NewCart].
type Listener interface {
	// OnSuccess is called once the purchase completes, with the hosted
	// page ID parsed from the thank-you URL (possibly empty).
	OnSuccess(hostedPageID string)
}

// StepListener is optionally implemented by a [Listener] that wants to know
// about each checkout step the user reaches.
type StepListener interface {
	OnEachStep(step string)
}

// Callbacks adapts plain functions to [Listener] and [StepListener].
// A nil field is skipped.
type Callbacks struct {
	Success  func(hostedPageID string)
	EachStep func(step string)
}

// OnSuccess calls c.Success.
func (c Callbacks) OnSuccess(hostedPageID string) {
	if c.Success != nil {
		c.Success(hostedPageID)
	}
}

// OnEachStep calls c.EachStep.
func (c Callbacks) OnEachStep(step string) {
	if c.EachStep != nil {
		c.EachStep(step)
	}
}
