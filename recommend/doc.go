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


// Package recommend implements the recommendation workflow.
//
// A query is first matched against the title corpus. When titles match, the
// caller expands each one on demand into a four-part long-form summary. When
// nothing matches, a fictional book is synthesized from the query instead:
//
//	QUERY_RECEIVED -> MATCHED    (one or more titles, expand each on demand)
//	               -> UNMATCHED  -> SYNTHESIZED
//
// Generative failures never escape the Expander or the Synthesizer. They are
// turned into readable placeholder text. Malformed model output is reported
// through a ParseStatus tag rather than an error. Successful results are
// memoized in bounded TTL caches keyed on the normalized input.
package recommend
