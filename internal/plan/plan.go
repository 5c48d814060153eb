// Package plan loads Terraform execution plans from files, stdin, or binary
// plan files and derives a local criticality assessment from them.
package plan

import (
	tfjson "github.com/hashicorp/terraform-json"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Document is an immutable view of a loaded plan.
type Document struct {
	// Format of the raw content.
	Format Format

	// Raw plan text sent to the model, possibly truncated.
	Raw string

	// Parsed is set when JSON plan output was available.
	Parsed *tfjson.Plan

	// Changes extracted from the parsed plan, empty for plain text input.
	Changes []ResourceChange

	// Truncated reports that Raw was cut to the configured byte ceiling.
	Truncated bool
}

// ResourceChange is one resource-level entry of the plan.
type ResourceChange struct {
	Address     string
	Type        string
	Actions     []string
	Criticality Criticality
}

// InputError marks unreadable, missing, or empty plan input. The process
// exits with status 1 when one reaches main.
type InputError struct {
	Msg string
	Err error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *InputError) Unwrap() error { return e.Err }

func inputErr(msg string, err error) *InputError {
	return &InputError{Msg: msg, Err: err}
}

func extractChanges(parsed *tfjson.Plan) []ResourceChange {
	if parsed == nil {
		return nil
	}
	var changes []ResourceChange
	for _, rc := range parsed.ResourceChanges {
		if rc == nil {
			continue
		}
		var actions []string
		if rc.Change != nil {
			for _, a := range rc.Change.Actions {
				actions = append(actions, string(a))
			}
		}
		changes = append(changes, ResourceChange{
			Address:     rc.Address,
			Type:        rc.Type,
			Actions:     actions,
			Criticality: AssessCriticality(rc.Type, actions),
		})
	}
	return changes
}
