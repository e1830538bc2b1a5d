// Package conv turns textual default literals into typed values.
// It covers primitives, pointers, slices and time parsing, with custom
// parser functions registered per destination type.
package conv
