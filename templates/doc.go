// Package templates provides the question template library: a catalog of
// parameterized query templates with placeholder substitution, weighted
// search, user-aware suggestion and personalization, usage analytics and
// JSON export/import.
package templates
