package cli

import (
	"context"

	"github.com/aretw0/chainspec"
	"github.com/aretw0/chainspec/pkg/runner"
)

// Validate compiles the spec file and realizes it without running anything.
// It returns the number of cases the spec would run.
func Validate(ctx context.Context, opts Options) (int, error) {
	p, err := Open(ctx, opts, nil)
	if err != nil {
		return 0, err
	}
	defer p.Close()

	suite := runner.NewSuite()
	if err := chainspec.Realize(ctx, p.Spec.Root, suite, p.options...); err != nil {
		return 0, err
	}
	return suite.Len(), nil
}

// Graph returns the Mermaid diagram of the spec file's action tree.
func Graph(ctx context.Context, opts Options) (string, error) {
	p, err := Open(ctx, opts, nil)
	if err != nil {
		return "", err
	}
	defer p.Close()
	return p.Graph(nil), nil
}
