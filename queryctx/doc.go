// Package queryctx blends organizational vocabulary, user activity and
// document-collection statistics into query enhancement.
//
// The Manager type owns three kinds of context:
//
//   - A catalog of organizational contexts (department vocabularies and
//     common queries), seeded and extensible via explicit add.
//   - The single current user context, with bounded recent-activity and
//     search-history lists.
//   - An immutable document-collection snapshot, replaced wholesale on
//     update.
//
// All state is guarded for concurrent use.
package queryctx
