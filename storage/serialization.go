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

package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"

	"github.com/docuseek/nlq/core"
)

// MUS serializers for the persisted record types. Written by hand
// because the persisted surface is four small structs.

type lexiconEntryMUS struct{}

// LexiconEntryMUS serializes LexiconEntry values.
var LexiconEntryMUS = lexiconEntryMUS{}

func (lexiconEntryMUS) Marshal(v LexiconEntry, bs []byte) (n int) {
	n = ord.String.Marshal(string(v.Language), bs)
	n += ord.String.Marshal(v.Term, bs[n:])
	n += marshalStringSlice(v.Synonyms, bs[n:])
	return n
}

func (lexiconEntryMUS) Unmarshal(bs []byte) (v LexiconEntry, n int, err error) {
	lang, n, err := ord.String.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	v.Language = core.Language(lang)
	var n1 int
	v.Term, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Synonyms, n1, err = unmarshalStringSlice(bs[n:])
	n += n1
	return v, n, err
}

func (lexiconEntryMUS) Size(v LexiconEntry) (n int) {
	n = ord.String.Size(string(v.Language))
	n += ord.String.Size(v.Term)
	n += sizeStringSlice(v.Synonyms)
	return n
}

type acronymEntryMUS struct{}

// AcronymEntryMUS serializes AcronymEntry values.
var AcronymEntryMUS = acronymEntryMUS{}

func (acronymEntryMUS) Marshal(v AcronymEntry, bs []byte) (n int) {
	n = ord.String.Marshal(v.Acronym, bs)
	n += ord.String.Marshal(v.Expansion, bs[n:])
	return n
}

func (acronymEntryMUS) Unmarshal(bs []byte) (v AcronymEntry, n int, err error) {
	v.Acronym, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	var n1 int
	v.Expansion, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return v, n, err
}

func (acronymEntryMUS) Size(v AcronymEntry) int {
	return ord.String.Size(v.Acronym) + ord.String.Size(v.Expansion)
}

type translationEntryMUS struct{}

// TranslationEntryMUS serializes TranslationEntry values.
var TranslationEntryMUS = translationEntryMUS{}

func (translationEntryMUS) Marshal(v TranslationEntry, bs []byte) (n int) {
	n = ord.String.Marshal(v.English, bs)
	n += ord.String.Marshal(v.Arabic, bs[n:])
	n += ord.Bool.Marshal(v.Transliteration, bs[n:])
	return n
}

func (translationEntryMUS) Unmarshal(bs []byte) (v TranslationEntry, n int, err error) {
	v.English, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	var n1 int
	v.Arabic, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Transliteration, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	return v, n, err
}

func (translationEntryMUS) Size(v TranslationEntry) int {
	return ord.String.Size(v.English) + ord.String.Size(v.Arabic) + ord.Bool.Size(v.Transliteration)
}

type templateUsageMUS struct{}

// TemplateUsageMUS serializes TemplateUsage values. LastUsed is stored
// as Unix microseconds.
var TemplateUsageMUS = templateUsageMUS{}

func (templateUsageMUS) Marshal(v TemplateUsage, bs []byte) (n int) {
	n = ord.String.Marshal(v.TemplateID, bs)
	n += varint.Int.Marshal(v.Count, bs[n:])
	n += varint.Int.Marshal(v.UniqueUsers, bs[n:])
	n += varint.Int64.Marshal(v.LastUsed.UnixMicro(), bs[n:])
	return n
}

func (templateUsageMUS) Unmarshal(bs []byte) (v TemplateUsage, n int, err error) {
	v.TemplateID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	var n1 int
	v.Count, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.UniqueUsers, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.LastUsed = time.UnixMicro(micros).UTC()
	return v, n, err
}

func (templateUsageMUS) Size(v TemplateUsage) (n int) {
	n = ord.String.Size(v.TemplateID)
	n += varint.Int.Size(v.Count)
	n += varint.Int.Size(v.UniqueUsers)
	n += varint.Int64.Size(v.LastUsed.UnixMicro())
	return n
}

func marshalStringSlice(v []string, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v), bs)
	for _, s := range v {
		n += ord.String.Marshal(s, bs[n:])
	}
	return n
}

func unmarshalStringSlice(bs []byte) (v []string, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if length < 0 {
		return nil, n, ErrSerializationFailed
	}
	for i := 0; i < length; i++ {
		var (
			s  string
			n1 int
		)
		s, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
		v = append(v, s)
	}
	return v, n, nil
}

func sizeStringSlice(v []string) (n int) {
	n = varint.Int.Size(len(v))
	for _, s := range v {
		n += ord.String.Size(s)
	}
	return n
}

// MarshalLexiconEntry serializes a LexiconEntry to bytes.
func MarshalLexiconEntry(entry LexiconEntry) []byte {
	buf := make([]byte, LexiconEntryMUS.Size(entry))
	LexiconEntryMUS.Marshal(entry, buf)
	return buf
}

// UnmarshalLexiconEntry deserializes a LexiconEntry from bytes.
func UnmarshalLexiconEntry(data []byte) (LexiconEntry, error) {
	entry, _, err := LexiconEntryMUS.Unmarshal(data)
	return entry, decodeErr(err)
}

// MarshalAcronymEntry serializes an AcronymEntry to bytes.
func MarshalAcronymEntry(entry AcronymEntry) []byte {
	buf := make([]byte, AcronymEntryMUS.Size(entry))
	AcronymEntryMUS.Marshal(entry, buf)
	return buf
}

// UnmarshalAcronymEntry deserializes an AcronymEntry from bytes.
func UnmarshalAcronymEntry(data []byte) (AcronymEntry, error) {
	entry, _, err := AcronymEntryMUS.Unmarshal(data)
	return entry, decodeErr(err)
}

// MarshalTranslationEntry serializes a TranslationEntry to bytes.
func MarshalTranslationEntry(entry TranslationEntry) []byte {
	buf := make([]byte, TranslationEntryMUS.Size(entry))
	TranslationEntryMUS.Marshal(entry, buf)
	return buf
}

// UnmarshalTranslationEntry deserializes a TranslationEntry from bytes.
func UnmarshalTranslationEntry(data []byte) (TranslationEntry, error) {
	entry, _, err := TranslationEntryMUS.Unmarshal(data)
	return entry, decodeErr(err)
}

// MarshalTemplateUsage serializes a TemplateUsage to bytes.
func MarshalTemplateUsage(usage TemplateUsage) []byte {
	buf := make([]byte, TemplateUsageMUS.Size(usage))
	TemplateUsageMUS.Marshal(usage, buf)
	return buf
}

// UnmarshalTemplateUsage deserializes a TemplateUsage from bytes.
func UnmarshalTemplateUsage(data []byte) (TemplateUsage, error) {
	usage, _, err := TemplateUsageMUS.Unmarshal(data)
	return usage, decodeErr(err)
}

// decodeErr maps low-level decode failures onto the package sentinels.
// A stored value that ends mid-record reads as truncated; structurally
// invalid values keep their ErrSerializationFailed classification.
func decodeErr(err error) error {
	if err == nil || errors.Is(err, ErrSerializationFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrTruncatedData, err)
}
