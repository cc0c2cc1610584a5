package holdings

import (
	"context"
	"errors"
	"net"
	"strings"
)

// DiagnosisKind classifies a document store connection failure.
type DiagnosisKind string

const (
	DiagnosisAuthFailure DiagnosisKind = "authentication-failure"
	DiagnosisDNSFailure  DiagnosisKind = "hostname-resolution-failure"
	DiagnosisTimeout     DiagnosisKind = "connection-timeout"
	DiagnosisUnknown     DiagnosisKind = "unknown"
)

// Diagnosis pairs a failure classification with an actionable hint.
// It is advisory only and never changes control flow.
type Diagnosis struct {
	Kind DiagnosisKind
	Hint string
}

var diagnosisHints = map[DiagnosisKind]string{
	DiagnosisAuthFailure: "Authentication failed. Check the document store username and password in the connection settings.",
	DiagnosisDNSFailure:  "Cannot resolve the document store hostname. Check the connection address and network connectivity.",
	DiagnosisTimeout:     "Connection timed out. Check that the document store is running and that your IP is whitelisted.",
	DiagnosisUnknown:     "Check the document store connection address and credentials.",
}

// Classify inspects a store error and maps it to a Diagnosis. Structured
// error types are checked first; substring matching on the message is
// retained only as a fallback for opaque upstream errors.
func Classify(err error) Diagnosis {
	kind := classifyKind(err)
	return Diagnosis{Kind: kind, Hint: diagnosisHints[kind]}
}

func classifyKind(err error) DiagnosisKind {
	if err == nil {
		return DiagnosisUnknown
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return DiagnosisDNSFailure
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return DiagnosisTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return DiagnosisTimeout
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "authentication failed"),
		strings.Contains(msg, "invalid auth"),
		strings.Contains(msg, "there was a problem with authentication"):
		return DiagnosisAuthFailure
	case strings.Contains(msg, "enotfound"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "getaddrinfo"):
		return DiagnosisDNSFailure
	case strings.Contains(msg, "timed out"),
		strings.Contains(msg, "timeout"):
		return DiagnosisTimeout
	}
	return DiagnosisUnknown
}
