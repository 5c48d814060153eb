package cli

import (
	"errors"
	"strings"

	"github.com/evilvant/ai-terraform-atlantis/internal/plan"
	"github.com/evilvant/ai-terraform-atlantis/internal/provider"
)

// Exit codes are part of the host contract: the pull-request automation
// treats them as the pass/fail signal for the analysis step.
const (
	ExitOK        = 0
	ExitInput     = 1
	ExitTransport = 2
	ExitAuth      = 3
)

func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var authErr *provider.AuthError
	if errors.As(err, &authErr) {
		return ExitAuth
	}
	var transportErr *provider.TransportError
	if errors.As(err, &transportErr) {
		return ExitTransport
	}
	return ExitInput
}

// ErrorLine formats an error as the single machine-parsable stderr line the
// host tool surfaces when the analysis fails.
func ErrorLine(err error) string {
	tag := "ERROR"
	var inputErr *plan.InputError
	var transportErr *provider.TransportError
	var authErr *provider.AuthError
	switch {
	case errors.As(err, &authErr):
		tag = "AUTH_ERROR"
	case errors.As(err, &transportErr):
		tag = "TRANSPORT_ERROR"
	case errors.As(err, &inputErr):
		tag = "INPUT_ERROR"
	}
	msg := strings.Join(strings.Fields(err.Error()), " ")
	return tag + ": " + msg
}
