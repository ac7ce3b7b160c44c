// Package shell contains the infrastructure glue of the example order
// application: mapping between archived envelopes and domain events,
// authorization rules, the audit trail subscriber, and the wiring that
// assembles command bus, query processor, event bus, and archive into a
// running application.
package shell
