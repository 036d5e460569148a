// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package validation

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/tomtom215/starchart/internal/models"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

type chartRequest struct {
	Location string  `validate:"required,notblank,max=50"`
	When     string  `validate:"required,localtime"`
	Hours    float64 `validate:"gt=0"`
	Format   string  `validate:"omitempty,oneof=gif mp4"`
}

func TestValidateStruct(t *testing.T) {
	valid := chartRequest{Location: "Sydney", When: "2024-01-01 22:00:00", Hours: 1, Format: "gif"}

	tests := []struct {
		name      string
		mutate    func(*chartRequest)
		wantTag   string
		wantInMsg string
	}{
		{"valid", func(*chartRequest) {}, "", ""},
		{"missing location", func(r *chartRequest) { r.Location = "" }, "required", "Location is required"},
		{"blank location", func(r *chartRequest) { r.Location = "   " }, "notblank", "must not be blank"},
		{"bad time layout", func(r *chartRequest) { r.When = "2024-01-01T22:00" }, "localtime", "YYYY-MM-DD HH:MM:SS"},
		{"impossible date", func(r *chartRequest) { r.When = "2024-02-30 10:00:00" }, "localtime", "When"},
		{"zero hours", func(r *chartRequest) { r.Hours = 0 }, "gt", "greater than 0"},
		{"bad format", func(r *chartRequest) { r.Format = "webm" }, "oneof", "one of: gif mp4"},
		{"long location", func(r *chartRequest) { r.Location = strings.Repeat("x", 51) }, "max", "at most 50 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			verr := ValidateStruct(&req)

			if tt.wantTag == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, expected nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, expected error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("len(Errors()) = %d, expected 1: %v", len(errs), verr)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, expected %q", errs[0].Tag(), tt.wantTag)
			}
			if !strings.Contains(verr.Error(), tt.wantInMsg) {
				t.Errorf("Error() = %q, expected to contain %q", verr.Error(), tt.wantInMsg)
			}
		})
	}
}

func TestRequestValidationError_ToError(t *testing.T) {
	verr := ValidateStruct(&chartRequest{When: "nope", Hours: 1})
	if verr == nil {
		t.Fatal("expected validation failure")
	}

	err := verr.ToError("GenerateImage")
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("errors.Is(err, ErrValidation) = false for %v", err)
	}
	if models.KindOf(err) != models.KindValidation {
		t.Errorf("KindOf(err) = %v, expected %v", models.KindOf(err), models.KindValidation)
	}
	if !strings.HasPrefix(err.Error(), "GenerateImage: ") {
		t.Errorf("err.Error() = %q, expected op prefix", err.Error())
	}
}

func TestErrorMessageTemplatesAreUsed(t *testing.T) {
	used := make(map[string]bool)
	rt := reflect.TypeOf(chartRequest{})
	for i := 0; i < rt.NumField(); i++ {
		for _, rule := range strings.Split(rt.Field(i).Tag.Get("validate"), ",") {
			tag, _, _ := strings.Cut(rule, "=")
			used[tag] = true
		}
	}

	for tag := range errorMessageTemplates {
		if !used[tag] {
			t.Errorf("message template for %q has no field using the tag", tag)
		}
	}
}
