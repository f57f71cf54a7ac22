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
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/docuseek/nlq"
	"github.com/docuseek/nlq/core"
	"github.com/docuseek/nlq/pipeline"
)

type queryRequest struct {
	Query      string `json:"query" binding:"required"`
	Language   string `json:"language"`
	UserID     string `json:"userId"`
	SessionID  string `json:"sessionId"`
	SkipCache  bool   `json:"skipCache"`
	MaxResults int    `json:"maxResults"`
}

type batchRequest struct {
	Queries    []string `json:"queries" binding:"required"`
	Language   string   `json:"language"`
	UserID     string   `json:"userId"`
	MaxResults int      `json:"maxResults"`
}

type sessionRequest struct {
	UserID string `json:"userId"`
}

type satisfactionRequest struct {
	Score float64 `json:"score"`
}

type synonymRequest struct {
	Language string   `json:"language"`
	Term     string   `json:"term" binding:"required"`
	Synonyms []string `json:"synonyms" binding:"required"`
}

type acronymRequest struct {
	Acronym   string `json:"acronym" binding:"required"`
	Expansion string `json:"expansion" binding:"required"`
}

type translationRequest struct {
	English         string `json:"english" binding:"required"`
	Arabic          string `json:"arabic" binding:"required"`
	Transliteration bool   `json:"transliteration"`
}

func newRouter(engine *nlq.Engine) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	{
		v1.POST("/query", handleQuery(engine))
		v1.POST("/query/batch", handleBatch(engine))
		v1.GET("/suggest", handleSuggest(engine))
		v1.POST("/sessions", handleStartSession(engine))
		v1.POST("/sessions/:id/satisfaction", handleSatisfaction(engine))
		v1.GET("/templates", handleTemplates(engine))
		v1.GET("/templates/popular", handlePopularTemplates(engine))
		v1.POST("/lexicon/synonyms", handleAddSynonym(engine))
		v1.POST("/lexicon/acronyms", handleAddAcronym(engine))
		v1.POST("/lexicon/translations", handleAddTranslation(engine))
	}
	return router
}

func handleQuery(engine *nlq.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req queryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		lang, ok := requestLanguage(c, req.Language)
		if !ok {
			return
		}
		opts := pipeline.ProcessOptions{
			SessionID:  req.SessionID,
			Language:   lang,
			SkipCache:  req.SkipCache,
			MaxResults: req.MaxResults,
		}
		if req.UserID != "" {
			opts.User = &core.UserContext{ID: req.UserID}
		}

		result, err := engine.ProcessQuery(c.Request.Context(), req.Query, opts)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, core.ErrEmptyQuery) || errors.Is(err, core.ErrValidation) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func handleBatch(engine *nlq.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req batchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		lang, ok := requestLanguage(c, req.Language)
		if !ok {
			return
		}
		opts := pipeline.ProcessOptions{
			Language:   lang,
			MaxResults: req.MaxResults,
		}
		if req.UserID != "" {
			opts.User = &core.UserContext{ID: req.UserID}
		}

		items := engine.ProcessQueryBatch(c.Request.Context(), req.Queries, opts)
		out := make([]gin.H, 0, len(items))
		for _, item := range items {
			entry := gin.H{"query": item.Query}
			if item.Err != nil {
				entry["error"] = item.Err.Error()
			} else {
				entry["result"] = item.Result
			}
			out = append(out, entry)
		}
		c.JSON(http.StatusOK, gin.H{"items": out})
	}
}

func handleSuggest(engine *nlq.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		partial := strings.TrimSpace(c.Query("q"))
		if partial == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"suggestions": engine.Suggest(partial)})
	}
}

func handleStartSession(engine *nlq.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var user *core.UserContext
		if req.UserID != "" {
			user = &core.UserContext{ID: req.UserID}
		}
		c.JSON(http.StatusOK, gin.H{"sessionId": engine.StartSession(user)})
	}
}

func handleSatisfaction(engine *nlq.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req satisfactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		err := engine.RecordSatisfaction(c.Param("id"), req.Score)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, core.ErrNotFound) {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func handleTemplates(engine *nlq.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang, ok := requestLanguage(c, c.Query("lang"))
		if !ok {
			return
		}
		templates := engine.Templates().List(c.Query("category"), lang)
		c.JSON(http.StatusOK, gin.H{"templates": templates})
	}
}

func handlePopularTemplates(engine *nlq.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		max := 5
		if raw := c.Query("max"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "max must be a positive integer"})
				return
			}
			max = parsed
		}
		c.JSON(http.StatusOK, gin.H{"templates": engine.Templates().PopularTemplates(max)})
	}
}

func handleAddSynonym(engine *nlq.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req synonymRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		lang, ok := requestLanguage(c, req.Language)
		if !ok {
			return
		}
		if lang == "" {
			lang = core.LanguageEnglish
		}
		if err := engine.AddSynonym(c.Request.Context(), lang, req.Term, req.Synonyms...); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func handleAddAcronym(engine *nlq.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req acronymRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := engine.AddAcronym(c.Request.Context(), req.Acronym, req.Expansion); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func handleAddTranslation(engine *nlq.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req translationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		err := engine.AddTranslation(c.Request.Context(), req.English, req.Arabic, req.Transliteration)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// requestLanguage validates an optional language code, writing the error
// response itself when the code is unknown.
func requestLanguage(c *gin.Context, raw string) (core.Language, bool) {
	if raw == "" {
		return "", true
	}
	lang := core.Language(strings.ToLower(raw))
	if err := core.ValidateLanguage(lang); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "language must be en or ar"})
		return "", false
	}
	return lang, true
}
