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

// Package graphqlapi binds a books.Store to a GraphQL schema.
//
// Schema parsing, validation, and execution are handled by
// github.com/graph-gophers/graphql-go; this package supplies the schema
// source and the resolver methods it calls into.
package graphqlapi

import (
	"golang.org/x/xerrors"

	graphql "github.com/graph-gophers/graphql-go"
	"zombiezen.com/go/bookstore/books"
)

// SchemaSource is the GraphQL schema served by this API.
const SchemaSource = `
schema {
	query: Query
	mutation: Mutation
}

type Query {
	"books lists every book in the store in the order they were added."
	books: [Book!]!
}

type Mutation {
	"createBook adds a book and returns it."
	createBook(input: CreateBookInput!): Book!

	"updateBook overwrites the given fields of a book, or returns null if the ID is unknown."
	updateBook(input: UpdateBookInput!): Book

	"deleteBook removes a book, reporting whether anything was removed."
	deleteBook(id: ID!): Boolean!
}

type Book {
	id: ID!
	title: String!
	author: String!
}

input CreateBookInput {
	title: String!
	author: String!
}

input UpdateBookInput {
	id: ID!
	title: String
	author: String
}
`

// NewSchema parses SchemaSource and binds it to the given store. The store
// must not be nil.
func NewSchema(store *books.Store) (*graphql.Schema, error) {
	if store == nil {
		return nil, xerrors.New("new schema: store is required")
	}
	schema, err := graphql.ParseSchema(SchemaSource, &Resolver{store: store}, graphql.UseStringDescriptions())
	if err != nil {
		return nil, xerrors.Errorf("new schema: %w", err)
	}
	return schema, nil
}

// Resolver is the root resolver. Its methods mirror the fields of the
// schema's Query and Mutation types.
type Resolver struct {
	store *books.Store
}

func (r *Resolver) Books() []*BookResolver {
	list := r.store.List()
	resolvers := make([]*BookResolver, len(list))
	for i, b := range list {
		resolvers[i] = &BookResolver{book: b}
	}
	return resolvers
}

func (r *Resolver) CreateBook(args *struct {
	Input CreateBookInput
}) *BookResolver {
	b := r.store.Create(args.Input.Title, args.Input.Author)
	return &BookResolver{book: b}
}

// UpdateBook resolves to null, not an error, when the ID is unknown: the
// caller learns "nothing matched" and can decide for itself whether that is
// exceptional.
func (r *Resolver) UpdateBook(args *struct {
	Input UpdateBookInput
}) (*BookResolver, error) {
	b, err := r.store.Update(string(args.Input.ID), books.Update{
		Title:  args.Input.Title,
		Author: args.Input.Author,
	})
	if xerrors.Is(err, books.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &BookResolver{book: b}, nil
}

func (r *Resolver) DeleteBook(args *struct {
	ID graphql.ID
}) bool {
	return r.store.Delete(string(args.ID))
}

// CreateBookInput corresponds to the schema's CreateBookInput type.
type CreateBookInput struct {
	Title  string
	Author string
}

// UpdateBookInput corresponds to the schema's UpdateBookInput type. Nil
// fields were omitted from the request and leave the book unchanged.
type UpdateBookInput struct {
	ID     graphql.ID
	Title  *string
	Author *string
}

// BookResolver resolves the fields of the schema's Book type from a stored
// record.
type BookResolver struct {
	book books.Book
}

func (b *BookResolver) ID() graphql.ID {
	return graphql.ID(b.book.ID)
}

func (b *BookResolver) Title() string {
	return b.book.Title
}

func (b *BookResolver) Author() string {
	return b.book.Author
}
