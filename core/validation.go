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

import "fmt"

// Query length limits, applied after sanitization.
const (
	MinQueryLength = 2
	MaxQueryLength = 500
)

// ValidateQueryText validates sanitized query text according to domain rules.
//
// Validation rules:
//   - text must not be empty
//   - length must be at least MinQueryLength
//   - length must not exceed MaxQueryLength
func ValidateQueryText(text string) error {
	if text == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyQuery)
	}
	if len([]rune(text)) < MinQueryLength {
		return fmt.Errorf("%w: %w", ErrValidation, ErrQueryTooShort)
	}
	if len([]rune(text)) > MaxQueryLength {
		return fmt.Errorf("%w: %w", ErrValidation, ErrQueryTooLong)
	}
	return nil
}

// ValidateLanguage validates that a language is supported for queries.
// Only English and Arabic are accepted; LanguageMixed is a detection
// outcome, not a valid input language.
func ValidateLanguage(lang Language) error {
	if lang != LanguageEnglish && lang != LanguageArabic {
		return fmt.Errorf("%w: %w: %q", ErrValidation, ErrUnsupportedLanguage, lang)
	}
	return nil
}

// ValidateTemplate validates a QuestionTemplate for catalog import.
//
// Validation rules:
//   - ID, Category, Title and Template must not be empty
//   - Language must be English or Arabic
//   - required parameters must have names
func ValidateTemplate(t *QuestionTemplate) error {
	if t == nil {
		return fmt.Errorf("%w: template is nil", ErrInvalidTemplate)
	}
	if t.ID == "" || t.Category == "" || t.Title == "" || t.Template == "" {
		return fmt.Errorf("%w: id, category, title and template are required", ErrInvalidTemplate)
	}
	if err := ValidateLanguage(t.Language); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}
	for _, p := range t.Parameters {
		if p.Name == "" {
			return fmt.Errorf("%w: parameter name is required", ErrInvalidTemplate)
		}
	}
	return nil
}

// Clamp01 clamps a score or confidence value to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// PushBounded prepends item to list, most recent first, dropping the
// oldest entries beyond max.
func PushBounded(list []string, item string, max int) []string {
	out := make([]string, 0, max)
	out = append(out, item)
	for _, v := range list {
		if len(out) >= max {
			break
		}
		out = append(out, v)
	}
	return out
}

// PushBoundedUnique behaves like PushBounded but first removes any
// existing occurrence of item, keeping the list deduplicated.
func PushBoundedUnique(list []string, item string, max int) []string {
	out := make([]string, 0, max)
	out = append(out, item)
	for _, v := range list {
		if v == item {
			continue
		}
		if len(out) >= max {
			break
		}
		out = append(out, v)
	}
	return out
}
