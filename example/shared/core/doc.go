// Package core contains the pure domain model of the example order
// application: domain events and the alias types they are built from.
//
// Code in this package is free of infrastructure concerns. Events carry
// their own type discriminator and serialize their own payload, which is
// everything the messaging and archival layers need to know about them.
package core
