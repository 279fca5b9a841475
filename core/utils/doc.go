// Package utils provides loose conversions for values decoded from JSON into
// interface types, such as the positional tuples of the compact snapshot format.
package utils
