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

// Package books provides an in-memory, ordered collection of book records.
//
// A Store holds the authoritative list of books for a server process. It
// performs no validation of field contents and no I/O; callers are expected
// to have validated inputs (for example, through a GraphQL schema) before
// reaching the store.
package books

import (
	"strconv"
	"sync"

	"golang.org/x/xerrors"
)

// ErrNotFound is returned by Store.Update when no book has the requested ID.
// Use xerrors.Is to test for it.
var ErrNotFound = xerrors.New("book not found")

// A Book is a single record in a Store. Books are compared and addressed by
// their ID, an opaque string assigned by the store at creation time.
type Book struct {
	ID     string
	Title  string
	Author string
}

// An Update describes a partial modification of a book. Nil fields are left
// unchanged.
type Update struct {
	Title  *string
	Author *string
}

// Store is an ordered, in-memory collection of books. It is safe to call its
// methods from multiple goroutines.
//
// The zero value is an empty store, but most callers should use NewStore.
type Store struct {
	mu     sync.Mutex
	books  []Book
	lastID int64
}

// NewStore returns a new, empty store.
func NewStore() *Store {
	return new(Store)
}

// List returns all books in the order they were created. The returned slice
// is a copy; the caller may retain or modify it freely.
func (s *Store) List() []Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]Book, len(s.books))
	copy(list, s.books)
	return list
}

// Create appends a new book with the given title and author and returns it.
// The book's ID is drawn from a counter that never repeats values for the
// life of the store, so deleting a book cannot cause a later Create to reuse
// its ID.
func (s *Store) Create(title, author string) Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	b := Book{
		ID:     strconv.FormatInt(s.lastID, 10),
		Title:  title,
		Author: author,
	}
	s.books = append(s.books, b)
	return b
}

// Update merges the non-nil fields of u over the book with the given ID and
// returns the updated book. If no book has the ID, Update returns an error
// for which xerrors.Is(err, ErrNotFound) reports true and leaves the store
// unchanged.
func (s *Store) Update(id string, u Update) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.books {
		if s.books[i].ID != id {
			continue
		}
		if u.Title != nil {
			s.books[i].Title = *u.Title
		}
		if u.Author != nil {
			s.books[i].Author = *u.Author
		}
		return s.books[i], nil
	}
	return Book{}, xerrors.Errorf("update book %s: %w", id, ErrNotFound)
}

// Delete removes any book with the given ID and reports whether the
// collection shrank. Deleting an unknown ID is a no-op that returns false.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.books)
	kept := s.books[:0]
	for _, b := range s.books {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	s.books = kept
	return len(kept) < n
}
