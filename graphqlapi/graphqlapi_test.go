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

package graphqlapi

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	graphql "github.com/graph-gophers/graphql-go"
	"zombiezen.com/go/bookstore/books"
)

func TestBooksEmpty(t *testing.T) {
	schema, _ := newTestSchema(t)
	got := exec(t, schema, `{ books { title author } }`, nil)
	want := map[string]interface{}{
		"books": []interface{}{},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("query result (-want +got):\n%s", diff)
	}
}

func TestCreateBook(t *testing.T) {
	schema, store := newTestSchema(t)
	got := exec(t, schema, `
		mutation ($input: CreateBookInput!) {
			createBook(input: $input) { id title author }
		}`,
		map[string]interface{}{
			"input": map[string]interface{}{
				"title":  "Dune",
				"author": "Frank Herbert",
			},
		})
	want := map[string]interface{}{
		"createBook": map[string]interface{}{
			"id":     "1",
			"title":  "Dune",
			"author": "Frank Herbert",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("createBook result (-want +got):\n%s", diff)
	}
	wantList := []books.Book{{ID: "1", Title: "Dune", Author: "Frank Herbert"}}
	if diff := cmp.Diff(wantList, store.List()); diff != "" {
		t.Errorf("store contents (-want +got):\n%s", diff)
	}
}

func TestUpdateBookNotFound(t *testing.T) {
	schema, store := newTestSchema(t)
	store.Create("Dune", "Frank Herbert")
	before := store.List()
	got := exec(t, schema, `
		mutation ($input: UpdateBookInput!) {
			updateBook(input: $input) { title }
		}`,
		map[string]interface{}{
			"input": map[string]interface{}{
				"id":    "42",
				"title": "Hyperion",
			},
		})
	want := map[string]interface{}{
		"updateBook": nil,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("updateBook result (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, store.List()); diff != "" {
		t.Errorf("store changed by failed updateBook (-before +after):\n%s", diff)
	}
}

func TestDeleteBook(t *testing.T) {
	schema, store := newTestSchema(t)
	store.Create("Dune", "Frank Herbert")

	got := exec(t, schema, `mutation { deleteBook(id: "1") }`, nil)
	want := map[string]interface{}{"deleteBook": true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("deleteBook result (-want +got):\n%s", diff)
	}
	if list := store.List(); len(list) > 0 {
		t.Errorf("store.List() after deleteBook = %v; want empty", list)
	}

	got = exec(t, schema, `mutation { deleteBook(id: "1") }`, nil)
	want = map[string]interface{}{"deleteBook": false}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("second deleteBook result (-want +got):\n%s", diff)
	}
}

// TestEndToEnd walks the store through the documented sample session,
// starting from the two records booksd seeds at startup.
func TestEndToEnd(t *testing.T) {
	schema, store := newTestSchema(t)
	store.Create("The Awakening", "Kate Chopin")
	store.Create("City of Glass", "Paul Auster")

	got := exec(t, schema, `
		mutation {
			createBook(input: {title: "Dune", author: "Frank Herbert"}) { id }
		}`, nil)
	want := map[string]interface{}{
		"createBook": map[string]interface{}{"id": "3"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("createBook result (-want +got):\n%s", diff)
	}

	got = exec(t, schema, `
		mutation {
			updateBook(input: {id: "3", title: "Dune Messiah"}) { title author }
		}`, nil)
	want = map[string]interface{}{
		"updateBook": map[string]interface{}{
			"title":  "Dune Messiah",
			"author": "Frank Herbert",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("updateBook result (-want +got):\n%s", diff)
	}

	got = exec(t, schema, `mutation { deleteBook(id: "2") }`, nil)
	want = map[string]interface{}{"deleteBook": true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("deleteBook result (-want +got):\n%s", diff)
	}

	got = exec(t, schema, `{ books { id title author } }`, nil)
	want = map[string]interface{}{
		"books": []interface{}{
			map[string]interface{}{
				"id":     "1",
				"title":  "The Awakening",
				"author": "Kate Chopin",
			},
			map[string]interface{}{
				"id":     "3",
				"title":  "Dune Messiah",
				"author": "Frank Herbert",
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("final books result (-want +got):\n%s", diff)
	}
}

func TestNewSchemaNilStore(t *testing.T) {
	if _, err := NewSchema(nil); err == nil {
		t.Error("NewSchema(nil) returned nil error")
	}
}

func newTestSchema(t *testing.T) (*graphql.Schema, *books.Store) {
	t.Helper()
	store := books.NewStore()
	schema, err := NewSchema(store)
	if err != nil {
		t.Fatal(err)
	}
	return schema, store
}

// exec runs a GraphQL operation and returns the decoded data object, failing
// the test on any execution error.
func exec(t *testing.T, schema *graphql.Schema, query string, variables map[string]interface{}) map[string]interface{} {
	t.Helper()
	resp := schema.Exec(context.Background(), query, "", variables)
	if len(resp.Errors) > 0 {
		t.Fatalf("execute %s: %v", query, resp.Errors)
	}
	var data map[string]interface{}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode response data: %v", err)
	}
	return data
}
