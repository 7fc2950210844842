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


package mathops

import "errors"

var (
	// ErrNegativeInput is returned when an operand is below zero.
	ErrNegativeInput = errors.New("negative input")

	// ErrInputTooLarge is returned when an operand exceeds its limit.
	ErrInputTooLarge = errors.New("input too large")

	// ErrUnknownOperation is returned for an operation name that isn't supported.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrRequestLogRequired is returned when logging is requested without a request log.
	ErrRequestLogRequired = errors.New("request log required")
)
