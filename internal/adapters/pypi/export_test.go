// export_test.go exports private functions for white-box testing.
package pypi

// NewClientWithHTTP exports the private constructor so tests can inject
// a mock transport.
var NewClientWithHTTP = newClientWithHTTP
