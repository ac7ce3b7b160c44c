// Package app assembles the example order application: it binds the feature
// slices to the registry, chains the logging and authorization decorators
// onto command bus and query processor, declares event capabilities, and
// subscribes the audit trail.
package app
