/*
Package runtime realizes action trees into spec runner registrations and
executes assertion steps with retries.

# Realization

Groups become "when doing <label>" blocks with a setup hook that computes the
group's result from its parent's. Cases become runnable cases labelled by the
single-child spine below them. Inside a case body every descendant executes
immediately, in order.

# Retries

Steps below a shouldEventually entry (or below any should entry when the
configuration says so) are retried on assertion failure. Each attempt waits
through the configured ports.DelayFunc and replays the chain from the root, so
the subject is fetched again.
*/
package runtime
