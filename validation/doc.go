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


// Package validation gates generated answers against retrieved evidence.
//
// The Validator extracts factual-looking spans from an answer (currency,
// percentages, square footage, bed/bath counts, dates, street addresses)
// and checks each against the evidence by case-insensitive containment.
// Unsupported spans, implausible figures, vague hedging over thin evidence,
// and location drift all become issues on the ValidationOutcome.
//
// Validation is pure text comparison: no external calls, no retries. The
// caller decides whether a failed outcome triggers regeneration or a
// low-confidence disclosure.
package validation
