// Package kernel provides core domain primitives shared by the order model.
//
// The package includes:
//   - SessionID: the value object identifying one checkout attempt
//   - Clock: the time source injected into handlers and jobs
//
// SessionID is immutable and safe for concurrent use. Its zero value is invalid;
// build it with NewSessionID or SessionIDFromString.
package kernel
