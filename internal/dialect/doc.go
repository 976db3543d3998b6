// Package dialect holds the spellings the scope tracker emits: the receiver,
// nil, the class-body aliases, the donation helper and the name prefixes for
// temporaries and scope identities.
//
// A dialect is read from opalscope.toml. Fields left out of the file keep
// their default value; unknown keys are rejected.
package dialect
