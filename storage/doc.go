// Copyright 2025 Docuseek Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package storage provides the persistence abstraction for
// runtime-extensible lexicons (synonyms, acronyms, translations) and
// template usage analytics.
//
// Public constructors return interfaces so storage backends stay
// swappable:
//
//	repo, err := badger.NewRepository(path)  // returns storage.Repository
//
// Use an in-memory repository in tests:
//
//	repo, err := badger.NewMemoryRepository()
//
// All implementations must be safe for concurrent use and accept a
// context on every operation.
package storage
