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


// Package multilang provides deterministic English/Arabic language
// processing for queries and documents.
//
// The Processor type implements:
//   - Script-based language detection with per-run segmentation
//   - Dictionary-driven translation with a transliteration fallback
//   - Cross-language matching of queries against foreign-language documents
//   - RTL detection and directional formatting for mixed text
//
// Translation is dictionary-based, not learned. The word and phrase
// dictionaries are runtime-extensible via AddTranslation and
// AddTransliteration.
package multilang
