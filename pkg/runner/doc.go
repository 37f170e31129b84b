/*
Package runner is the default spec runner of chainspec.

A Suite collects groups, setup hooks and cases through the ports.SpecRunner
primitives and executes them in registration order. Results are gathered in a
Report, which the handlers in this package write as colored text, NDJSON or
Markdown.

# Usage

	suite := runner.NewSuite(runner.WithLogger(logger))
	if err := spec.Realize(ctx, suite); err != nil {
		log.Fatal(err)
	}

	report := suite.Run(ctx)
	runner.NewTextHandler(os.Stdout).Write(report)
*/
package runner
