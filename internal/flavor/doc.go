// Package flavor classifies raw flavor asset records into semantic
// categories (source, ready, error, not applicable, pending, other) with a
// human-readable reason per record.
//
// Classification is total: every input record yields exactly one Classified
// value and malformed fields are normalized and noted rather than rejected.
// Classifier optionally carries source dimensions and flavor params targets
// so not-applicable flavors can explain why the platform skipped them.
package flavor
