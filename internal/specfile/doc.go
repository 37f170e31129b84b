/*
Package specfile loads YAML spec files and compiles them into action trees.

A spec file names a subject source and lists chains of member accesses:

	name: counter converges
	subject:
	  redis: { addr: "localhost:6379", key: "counter" }
	config:
	  max_retries: 10
	chains:
	  - - shouldEventually
	    - call: equal
	      args: [5]

A bare string entry is a property access (or an assertion entry when it is
"should" or "shouldEventually"). Map entries hold exactly one of get, call,
should or shouldEventually; args are only allowed with call.
*/
package specfile
