// =================================================================================
//
//			fox-audio - https://www.foxhollow.cc/projects/fox-audio/
//
//		 Fox Meter is a tiny always-on-top level meter that shows the
//	  loudness of the default microphone as a stack of colored bars
//
//		 Copyright (c) 2024 Steve Cross <flip@foxhollow.cc>
//
//			Licensed under the Apache License, Version 2.0 (the "License");
//			you may not use this file except in compliance with the License.
//			You may obtain a copy of the License at
//
//			     http://www.apache.org/licenses/LICENSE-2.0
//
//			Unless required by applicable law or agreed to in writing, software
//			distributed under the License is distributed on an "AS IS" BASIS,
//			WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//			See the License for the specific language governing permissions and
//			limitations under the License.
//
// =================================================================================
package audio

import "math"

// CalibrationOffset recenters typical ambient noise RMS near zero so that
// silence lights no bars. It was chosen empirically for the byte view of a
// 16 bit big-endian stream and must be re-derived if the sample format changes.
const CalibrationOffset = 50

// EstimateLevel returns the calibrated RMS loudness of a chunk.
//
// The mean is computed with integer division (truncating toward zero) while
// the squared deviations are accumulated as floats. The result is rounded by
// adding 0.5 and truncating, then shifted down by CalibrationOffset, so the
// level is negative for quiet input.
func EstimateLevel(chunk Chunk) int {
	count := int64(len(chunk))
	if count == 0 {
		return -CalibrationOffset
	}

	var sum int64
	for _, sample := range chunk {
		sum += int64(sample)
	}

	mean := float64(sum / count)

	sumMeanSquare := 0.0
	for _, sample := range chunk {
		deviation := float64(sample) - mean
		sumMeanSquare += deviation * deviation
	}

	meanSquare := sumMeanSquare / float64(count)

	return int(math.Sqrt(meanSquare)+0.5) - CalibrationOffset
}
