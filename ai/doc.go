// Copyright 2025 Poiesic Systems
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


// Package ai provides abstractions for AI services used by the librarian.
//
// This package defines interfaces for the two external model operations the
// application depends on: text embeddings (used when indexing the catalog) and
// text generation (used to expand summaries and invent fallback books). The
// recommendation workflow depends on these abstractions rather than on a
// concrete vendor client.
//
// # Interfaces
//
//   - Embedder: Generates vector embeddings from text
//   - Generator: Issues one completion call for a system/user prompt pair
//   - AIProvider: Aggregates AI services for convenient initialization
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewGenerator, etc.) return
// INTERFACE types. Test utility constructors (mock.NewMockGenerator,
// mock.NewMockEmbedder) return CONCRETE types so tests can inject behavior
// and read call counts.
//
//	provider, err := openai.NewProvider(config)  // returns ai.AIProvider
//	mockGen := mock.NewMockGenerator()           // returns *mock.MockGenerator
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithAPIKey(os.Getenv("OPENAI_API_KEY")))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	text, err := provider.Generator().Generate(ctx, ai.GenerationRequest{
//	    System:      "You are a knowledgeable librarian.",
//	    User:        "Summarize The Hobbit.",
//	    MaxTokens:   600,
//	    Temperature: 0.7,
//	})
package ai
