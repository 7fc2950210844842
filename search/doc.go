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


// Package search provides keyword matching over the title corpus.
//
// The Matcher returns the titles whose lower-cased text contains at least one
// lower-cased, whitespace-delimited token of the query. Results keep corpus
// order and are truncated to a fixed cap; there is no ranking or scoring.
// Only titles are searched, never summaries.
package search
