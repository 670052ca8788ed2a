// Copyright 2026 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package graphqlhttp provides functions for serving GraphQL over HTTP as
// described in https://graphql.org/learn/serving-over-http/.
package graphqlhttp

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	graphql "github.com/graph-gophers/graphql-go"
	"golang.org/x/xerrors"
)

// Request is a GraphQL request as carried over HTTP.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

// Handler serves GraphQL HTTP requests by executing them against its schema.
type Handler struct {
	schema *graphql.Schema
}

// NewHandler returns a new handler that executes requests against the given
// schema.
func NewHandler(schema *graphql.Schema) *Handler {
	return &Handler{schema: schema}
}

// ServeHTTP executes a GraphQL request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	request, err := Parse(r)
	if err != nil {
		code := StatusCode(err)
		if code == http.StatusMethodNotAllowed {
			w.Header().Set("Allow", "GET, HEAD, POST")
		}
		http.Error(w, err.Error(), code)
		return
	}
	response := h.schema.Exec(r.Context(), request.Query, request.OperationName, request.Variables)
	WriteResponse(w, response)
}

// Parse parses a GraphQL HTTP request. If an error is returned, StatusCode
// will return the proper HTTP status code to use.
//
// Request methods may be GET, HEAD, or POST. If the method is not one of
// these, then an error is returned that will make StatusCode return
// http.StatusMethodNotAllowed. GET and HEAD requests must be queries;
// documents containing mutation or subscription operations are rejected.
func Parse(r *http.Request) (Request, error) {
	request := Request{
		Query: r.URL.Query().Get("query"),
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if v := r.FormValue("variables"); v != "" {
			if err := json.Unmarshal([]byte(v), &request.Variables); err != nil {
				return Request{}, &httpError{
					msg:   "parse graphql request: ",
					code:  http.StatusBadRequest,
					cause: err,
				}
			}
		}
		request.OperationName = r.FormValue("operationName")
		if !isQueryDocument(request.Query) {
			return Request{}, &httpError{
				msg:  "parse graphql request: GET requests must be queries",
				code: http.StatusBadRequest,
			}
		}
	case http.MethodPost:
		rawContentType := r.Header.Get("Content-Type")
		contentType, _, err := mime.ParseMediaType(rawContentType)
		if err != nil {
			return Request{}, &httpError{
				msg:  "parse graphql request: invalid content type: " + rawContentType,
				code: http.StatusUnsupportedMediaType,
			}
		}
		switch contentType {
		case "application/json":
			if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
				return Request{}, &httpError{
					msg:   "parse graphql request: ",
					code:  http.StatusBadRequest,
					cause: err,
				}
			}
		case "application/x-www-form-urlencoded":
			request.Query = r.FormValue("query")
		case "application/graphql":
			data, err := io.ReadAll(r.Body)
			if err != nil {
				return Request{}, &httpError{
					msg:   "parse graphql request: ",
					code:  http.StatusBadRequest,
					cause: err,
				}
			}
			if len(data) > 0 {
				request.Query = string(data)
			}
		default:
			return Request{}, &httpError{
				msg:  "parse graphql request: unrecognized content type: " + contentType,
				code: http.StatusUnsupportedMediaType,
			}
		}
	default:
		return Request{}, &httpError{
			msg:  fmt.Sprintf("parse graphql request: method %s not allowed", r.Method),
			code: http.StatusMethodNotAllowed,
		}
	}
	return request, nil
}

// isQueryDocument reports whether the document contains at least one
// operation and no mutation or subscription operations. It scans top-level
// tokens only; full validation belongs to the schema layer, this merely has
// to keep mutations off of GET.
func isQueryDocument(doc string) bool {
	sawOperation := false
	for i := 0; i < len(doc); {
		switch c := doc[i]; {
		case c == '#':
			for i < len(doc) && doc[i] != '\n' {
				i++
			}
		case c == '"':
			i = skipString(doc, i)
		case c == '{', c == '(':
			// Either a shorthand query or an operation's variable
			// definitions or selection set.
			sawOperation = true
			i = skipBlock(doc, i)
		case isNameStart(c):
			j := i + 1
			for j < len(doc) && isNameChar(doc[j]) {
				j++
			}
			word := doc[i:j]
			i = j
			switch word {
			case "query", "fragment":
				sawOperation = true
				i = skipName(doc, i)
			case "mutation", "subscription":
				return false
			}
		default:
			i++
		}
	}
	return sawOperation
}

// skipBlock advances past the brace- or parenthesis-delimited block starting
// at doc[i], ignoring delimiters inside strings and comments.
func skipBlock(doc string, i int) int {
	depth := 0
	for i < len(doc) {
		switch doc[i] {
		case '{', '(':
			depth++
			i++
		case '}', ')':
			depth--
			i++
			if depth <= 0 {
				return i
			}
		case '"':
			i = skipString(doc, i)
		case '#':
			for i < len(doc) && doc[i] != '\n' {
				i++
			}
		default:
			i++
		}
	}
	return i
}

// skipString advances past the string literal starting at doc[i].
func skipString(doc string, i int) int {
	if strings.HasPrefix(doc[i:], `"""`) {
		end := strings.Index(doc[i+3:], `"""`)
		if end < 0 {
			return len(doc)
		}
		return i + 3 + end + 3
	}
	i++
	for i < len(doc) {
		switch doc[i] {
		case '\\':
			i += 2
		case '"':
			return i + 1
		default:
			i++
		}
	}
	return i
}

// skipName advances past insignificant characters and at most one name token
// (an operation or fragment name).
func skipName(doc string, i int) int {
	for i < len(doc) && (doc[i] == ' ' || doc[i] == '\t' || doc[i] == '\r' || doc[i] == '\n' || doc[i] == ',') {
		i++
	}
	if i < len(doc) && isNameStart(doc[i]) {
		for i < len(doc) && isNameChar(doc[i]) {
			i++
		}
	}
	return i
}

func isNameStart(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isNameChar(c byte) bool {
	return isNameStart(c) || '0' <= c && c <= '9'
}

type httpError struct {
	msg   string
	code  int
	cause error
}

func (e *httpError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + e.cause.Error()
}

func (e *httpError) Unwrap() error {
	return e.cause
}

// StatusCode returns the HTTP status code an error indicates.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var e *httpError
	if !xerrors.As(err, &e) {
		return http.StatusInternalServerError
	}
	return e.code
}

// WriteResponse writes a GraphQL result as an HTTP response.
func WriteResponse(w http.ResponseWriter, response *graphql.Response) {
	payload, err := json.Marshal(response)
	if err != nil {
		http.Error(w, "GraphQL marshal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
	if _, err := w.Write(payload); err != nil {
		return
	}
}
