// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package animation

import (
	"math"
	"time"

	"github.com/tomtom215/starchart/internal/models"
)

// MinFrameDuration is the shortest delay most GIF viewers honour.
const MinFrameDuration = 20 * time.Millisecond

// PlanFrames returns the naive local timestamps start, start+step, ... for
// floor(hours*60/stepMinutes) frames. A positive maxFrames caps that count.
func PlanFrames(start time.Time, hours float64, stepMinutes, maxFrames int) ([]time.Time, error) {
	const op = "animation.PlanFrames"

	if !(hours > 0) || math.IsInf(hours, 0) {
		return nil, models.Errorf(models.KindValidation, op, "duration must be a positive number of hours, got %v", hours)
	}
	if stepMinutes <= 0 {
		return nil, models.Errorf(models.KindValidation, op, "step must be a positive number of minutes, got %d", stepMinutes)
	}

	total := int(math.Floor(hours * 60 / float64(stepMinutes)))
	if total <= 0 {
		return nil, models.Errorf(models.KindValidation, op,
			"a %d minute step does not fit in %v hours", stepMinutes, hours)
	}
	if maxFrames > 0 && total > maxFrames {
		return nil, models.Errorf(models.KindValidation, op,
			"%v hours at a %d minute step needs %d frames, limit is %d", hours, stepMinutes, total, maxFrames)
	}

	step := time.Duration(stepMinutes) * time.Minute
	frames := make([]time.Time, total)
	for i := range frames {
		frames[i] = start.Add(time.Duration(i) * step)
	}
	return frames, nil
}

// FrameDuration returns the playback delay for one step.
func FrameDuration(stepMinutes, msPerStepMinute int) time.Duration {
	d := time.Duration(stepMinutes*msPerStepMinute) * time.Millisecond
	if d < MinFrameDuration {
		return MinFrameDuration
	}
	return d
}
