package checkout

import "strings"

// OutcomeKind tags the result of classifying a navigation URL.
type OutcomeKind int

const (
	// OutcomeUnrecognized means the URL is ignored.
	OutcomeUnrecognized OutcomeKind = iota
	// OutcomeCompleted means the purchase completed.
	OutcomeCompleted
	// OutcomeStep means the URL is a known checkout step.
	OutcomeStep
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCompleted:
		return "completed"
	case OutcomeStep:
		return "step"
	default:
		return "unrecognized"
	}
}

// Outcome is the result of [Classify].
type Outcome struct {
	Kind OutcomeKind
	// HostedPageID is set for OutcomeCompleted. It may be empty.
	HostedPageID string
	// Step is set for OutcomeStep.
	Step string
}

// Classify maps a navigation URL to an outcome using [StepName].
func Classify(rawURL string) Outcome {
	return ClassifyWith(rawURL, StepName)
}

// ClassifyWith maps a navigation URL to an outcome. Rules apply in order:
//
//  1. An empty URL is unrecognized.
//  2. A URL containing "thankyou" or "thank_you" is a completed purchase;
//     the hosted page ID is the second-to-last "/"-separated segment, or
//     "" when the URL has fewer than two segments.
//  3. A URL the classifier names is that step.
//  4. Anything else is unrecognized.
//
// A nil classifier recognizes no steps.
func ClassifyWith(rawURL string, classify StepClassifier) Outcome {
	if rawURL == "" {
		return Outcome{Kind: OutcomeUnrecognized}
	}
	if strings.Contains(rawURL, "thankyou") || strings.Contains(rawURL, "thank_you") {
		return Outcome{Kind: OutcomeCompleted, HostedPageID: hostedPageID(rawURL)}
	}
	if classify != nil {
		if step := classify(rawURL); step != "" {
			return Outcome{Kind: OutcomeStep, Step: step}
		}
	}
	return Outcome{Kind: OutcomeUnrecognized}
}

func hostedPageID(rawURL string) string {
	parts := strings.Split(rawURL, "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2]
}
