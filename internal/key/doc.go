// Package key identifies versioned resources.
//
// A Key names a resource by type, logical id and, optionally, version:
//
//	Patient
//	Patient/42
//	Patient/42/_history/3
//	https://example.org/fhir/Patient/42/_history/3
//
// Keys move between two places: they are extracted from a resource's own
// identity fields (ExtractFrom) and written back onto them (ApplyTo). Both
// directions go through this package so that an identity read off a resource
// and an identity applied to it always agree.
//
// Identifiers are NFC-normalised on the way in. Two keys that render the same
// text compare equal regardless of how the caller composed the characters.
package key
