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

// booksd serves the book store GraphQL API over HTTP.
//
// The store lives in process memory and starts with two seeded records, so
// the server is useful for demos and integration tests without any setup.
package main

import (
	"flag"
	"log"
	"net/http"

	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/stats/view"
	"zombiezen.com/go/bookstore/books"
	"zombiezen.com/go/bookstore/graphqlapi"
	"zombiezen.com/go/bookstore/graphqlhttp"
)

func main() {
	listen := flag.String("listen", "localhost:8080", "address to listen on")
	flag.Parse()

	if err := view.Register(ochttp.DefaultServerViews...); err != nil {
		log.Fatalf("booksd: register views: %v", err)
	}

	store := books.NewStore()
	store.Create("The Awakening", "Kate Chopin")
	store.Create("City of Glass", "Paul Auster")
	schema, err := graphqlapi.NewSchema(store)
	if err != nil {
		log.Fatalf("booksd: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/graphql", graphqlhttp.NewHandler(schema))
	log.Printf("booksd: listening on http://%s/graphql", *listen)
	err = http.ListenAndServe(*listen, &ochttp.Handler{Handler: mux})
	log.Fatalf("booksd: serve: %v", err)
}
