// Package sweerr defines the core's domain-level error kinds (spec §7),
// shared by every layer from monzo arithmetic up through the visitor so
// that a host catching an error from evaluate_source can switch on a
// concrete Go type rather than parsing a message string.
//
// Every kind but OutOfGasError is catchable by SonicWeave's own try/catch;
// IsOutOfGas recognizes an OutOfGasError even through an Unwrap chain (such
// as one built by errors.Wrap), and the evaluator's try statement uses it to
// skip its catch block and pass the error on.
package sweerr
