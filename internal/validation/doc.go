// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

// Package validation provides struct validation using go-playground/validator v10.
//
// The package wraps a thread-safe singleton validator with Starchart's custom
// tags and readable messages. Failures convert to the domain error taxonomy
// via RequestValidationError.ToError, which yields a models.KindValidation
// error.
//
// # Custom Tags
//
//   - localtime: string parses with models.LocalTimeLayout ("2006-01-02 15:04:05")
//   - notblank: string contains at least one non-space character
//
// # Example
//
//	type ImageRequest struct {
//	    Location  string `validate:"required,notblank,max=200"`
//	    When      string `validate:"required,localtime"`
//	    ChartSize int    `validate:"omitempty,min=1,max=100"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    return verr.ToError("GenerateImage")
//	}
//
// # Thread Safety
//
// GetValidator initialises once; the validator caches struct reflection data
// and is safe for concurrent use.
package validation
