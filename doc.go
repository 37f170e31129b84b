/*
Package chainspec builds executable specifications from fluent chains of member accesses.

A chain starts at a subject and reads its properties and methods. Once it passes
through "should" (or "shouldEventually") every further access is an assertion
step evaluated against the previous result. Chains are recorded as an action
tree; realization turns the tree into groups and cases of a spec runner, and the
runner executes them.

# Concept

Property and method accesses outside an assertion become groups labelled
"when doing <name>". Each group fetches its value once, in a setup hook, before
its first case. The assertion entry becomes a case, and everything below it runs
immediately inside the case body.

shouldEventually chains are retried when an assertion fails: the whole chain is
replayed from the subject, so a value that converges over time (a queue
draining, a counter in Redis, a file being written) can be asserted without
sleeps in the test.

# Usage

	spec := chainspec.FromSource(ctx, "reading the counter", redis.New(addr, "", 0, "counter"),
		chainspec.WithConfig(config.Config{MaxRetries: 10, RetryInterval: 200 * time.Millisecond}),
	)
	spec.Subject().ShouldEventually().Call("equal", 5)

	report, err := spec.Run(ctx)
	if err != nil {
		log.Fatal(err)
	}
	runner.NewTextHandler(os.Stdout).Write(report)

# Configuration

Unless WithConfig is given, the retry settings come from CHAINSPEC_MAX_RETRIES
(default 5), CHAINSPEC_SHOULD_MEANS_EVENTUALLY and CHAINSPEC_RETRY_INTERVAL.
*/
package chainspec
