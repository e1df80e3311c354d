package app

import (
	"context"
	"errors"
	"fmt"

	"portfolio/internal/domain"
)

// Kind names what was submitted; it picks the success copy.
type Kind string

const (
	KindReview  Kind = "review"
	KindBooking Kind = "booking"
	KindContact Kind = "contact"
)

var successCopy = map[Kind]string{
	KindReview:  "Thank you! Your review has been submitted.",
	KindBooking: "Thanks! Your booking request has been received. I'll get back to you within 24 hours.",
	KindContact: "Thank you for your message! I'll get back to you soon.",
}

var noun = map[Kind]string{
	KindReview:  "review",
	KindBooking: "booking request",
	KindContact: "message",
}

const MsgMissingFields = "Please fill in all required fields."

// Classify maps a submission result onto the two-valued outcome shown to the
// visitor. Network failures and server errors get different copy, and both
// offer fallbackEmail for a manual follow-up when one is set.
func Classify(kind Kind, err error, fallbackEmail string) domain.Outcome {
	if err == nil {
		return domain.Outcome{Status: domain.StatusSuccess, Message: successCopy[kind]}
	}
	if domain.IsValidation(err) {
		return domain.Outcome{Status: domain.StatusFailed, Message: MsgMissingFields}
	}

	var msg string
	if errors.Is(err, domain.ErrUnreachable) || errors.Is(err, context.DeadlineExceeded) {
		msg = "We couldn't reach the server. Please check your connection and try again"
	} else {
		n, ok := noun[kind]
		if !ok {
			n = "request"
		}
		msg = fmt.Sprintf("Something went wrong while sending your %s. Please try again later", n)
	}
	if fallbackEmail != "" {
		msg += ", or email me directly at " + fallbackEmail
	}
	return domain.Outcome{Status: domain.StatusFailed, Message: msg + "."}
}
