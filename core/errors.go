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


package core

import "errors"

var (
	// ErrInvalidBook indicates a Book failed validation.
	ErrInvalidBook = errors.New("invalid book")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyQuery indicates a recommendation query with no usable text.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrInvalidRequestLogEntry indicates a RequestLogEntry failed validation.
	ErrInvalidRequestLogEntry = errors.New("invalid request log entry")

	// ErrEmptyOperation indicates the Operation field is empty.
	ErrEmptyOperation = errors.New("operation cannot be empty")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")
)

// EmptyQueryPrompt is shown to users when ErrEmptyQuery is returned.
const EmptyQueryPrompt = "Please enter a description or keywords to search."
