// Package testing provides test utilities for the greenlight library.
//
// This package offers helpers for setting up test environments, particularly
// embedded NATS servers for exercising the allocation service. It follows Go's
// convention of providing testing utilities in a dedicated package (similar to
// net/http/httptest).
//
// Key utilities:
//   - StartEmbeddedNATS: Single in-process NATS server plus a client connection
//   - Connect: Additional client connections to the same server
//   - NewTestLogger: Logger that writes through t.Logf and records entries for assertions
//
// Example usage:
//
//	import (
//	    "testing"
//	    greentest "github.com/arloliu/greenlight/testing"
//	)
//
//	func TestMyComponent(t *testing.T) {
//	    _, nc := greentest.StartEmbeddedNATS(t)
//	    // Use nc for your tests
//	}
package testing
