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


package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/docuseek/nlq"
	"github.com/docuseek/nlq/pipeline"
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	engine, err := nlq.NewEngine()
	if err != nil {
		panic(err)
	}
	defer engine.Close()

	query := "find recent pdf contracts"
	if len(os.Args) > 1 {
		query = strings.Join(os.Args[1:], " ")
	}

	ctx := context.Background()
	result, err := engine.ProcessQuery(ctx, query, pipeline.ProcessOptions{})
	if err != nil {
		panic(err)
	}

	fmt.Printf("Query: %q -> %q\n", result.OriginalQuery, result.ProcessedQuery)
	fmt.Printf("Confidence: %0.2f, components: %s\n",
		result.Confidence, strings.Join(result.Metadata.UsedComponents, ", "))
	if result.Intent != nil {
		fmt.Printf("Intent: %s (%0.2f)\n", result.Intent.Type, result.Intent.Confidence)
		for _, entity := range result.Intent.Entities {
			fmt.Printf("  entity %s: %q\n", entity.Type, entity.Value)
		}
	}
	if result.ExpandedQuery != nil {
		for i, variation := range result.ExpandedQuery.RankedVariations {
			fmt.Printf("Variation %d: %q [%0.3f]\n", i, variation.Query, variation.Score)
		}
	}
	if result.TemplateMatch != nil {
		fmt.Printf("Template: %s [%0.3f] -> %q\n",
			result.TemplateMatch.Template.ID, result.TemplateMatch.Score,
			result.TemplateMatch.GeneratedQuery)
	}
}
