/*
 * MIT License
 *
 * Copyright (c) 2022-2024  Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package validation

import "fmt"

// maxIDLength bounds any user-supplied identifier validated by IDValidator.
const maxIDLength = 255

// idPattern allows letters, digits, hyphens and underscores only.
const idPattern = `^[a-zA-Z0-9_-]+$`

// IDValidator validates a user-supplied identifier: a tag, a job key, or
// any other short name threaded through the system that must stay safe to
// log, index, and carry across the wire.
type IDValidator struct {
	id string
}

var _ Validator = (*IDValidator)(nil)

// NewIDValidator creates an instance of IDValidator for id.
func NewIDValidator(id string) *IDValidator {
	return &IDValidator{id: id}
}

// Validate implements validation.Validator.
func (v *IDValidator) Validate() error {
	return New().
		AddAssertion(len(v.id) > 0, "id must not be empty").
		AddAssertion(len(v.id) <= maxIDLength, fmt.Sprintf("id must not exceed %d characters", maxIDLength)).
		AddValidator(NewPatternValidator(idPattern, v.id, fmt.Errorf("id=(%s) contains invalid characters", v.id))).
		Validate()
}
