package provider

import (
	"context"
	"fmt"
	"os"
)

// FakeRunner returns the contents of a fixture file as the model response.
type FakeRunner struct {
	FixturePath string
}

func NewFakeRunner(path string) *FakeRunner {
	return &FakeRunner{FixturePath: path}
}

func (f *FakeRunner) Analyze(ctx context.Context, req Request) (string, error) {
	_ = ctx
	_ = req
	data, err := os.ReadFile(f.FixturePath)
	if err != nil {
		return "", fmt.Errorf("failed to read provider fixture: %w", err)
	}
	return string(data), nil
}

func (f *FakeRunner) Ping(ctx context.Context) error {
	_ = ctx
	if _, err := os.Stat(f.FixturePath); err != nil {
		return fmt.Errorf("provider fixture missing: %w", err)
	}
	return nil
}

// ErrRunner always fails with the configured error, for exercising the
// failure paths end to end.
type ErrRunner struct {
	Err error
}

func (e *ErrRunner) Analyze(ctx context.Context, req Request) (string, error) {
	_ = ctx
	_ = req
	return "", e.Err
}

func (e *ErrRunner) Ping(ctx context.Context) error { return e.Err }
