// Package primitive implements FHIR primitive values: validated scalars
// whose equality and ordering follow the FHIR specification rather than
// host-native rules.
//
// Decimals compare by numeric value regardless of scale ("0.010" equals
// "0.01"), dates and times carry a precision and only compare when their
// precisions agree, and bounded integer types (unsignedInt, positiveInt)
// are plain integers once parsed.
//
// Construction is validated: use the Parse* functions or Coerce rather than
// converting host values directly.
package primitive
