// Copyright 2025 Docuseek Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "errors"

// Error taxonomy shared across the pipeline.
var (
	// ErrValidation indicates malformed input: an empty, undersized or
	// oversized query, a missing required template parameter, or an
	// unsupported language. Surfaced synchronously, never retried.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates an unknown session or template id.
	ErrNotFound = errors.New("not found")

	// ErrComponentFailure indicates a pipeline stage after intent
	// extraction failed; its contribution is omitted from the result.
	ErrComponentFailure = errors.New("component failure")

	// ErrPipelineFailure indicates intent extraction failed or an error
	// escaped the stage guards; the pipeline produces the fixed fallback
	// result instead.
	ErrPipelineFailure = errors.New("pipeline failure")
)

// Validation errors for query text and template parameters.
var (
	// ErrEmptyQuery indicates the query is empty after sanitization.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrQueryTooShort indicates the query is under the minimum length.
	ErrQueryTooShort = errors.New("query too short")

	// ErrQueryTooLong indicates the query exceeds the maximum length.
	ErrQueryTooLong = errors.New("query too long")

	// ErrUnsupportedLanguage indicates a language outside en/ar.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrMissingParameter indicates a required template parameter is
	// missing or empty.
	ErrMissingParameter = errors.New("missing required parameter")

	// ErrInvalidTemplate indicates a template failed import validation.
	ErrInvalidTemplate = errors.New("invalid template")
)
