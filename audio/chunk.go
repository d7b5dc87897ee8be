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

// Chunk is one batch of signed samples read in a single capture call. The
// meter works on the byte view of the 16 bit stream, so every sample is one
// signed byte of the big-endian PCM data.
type Chunk []int8

// ChunkFromPCM16BE returns the byte view of big-endian 16 bit samples, with
// each byte taken as one signed sample (high byte first).
func ChunkFromPCM16BE(samples []int16) Chunk {
	chunk := make(Chunk, len(samples)*2)

	for i, sample := range samples {
		chunk[2*i] = int8(uint16(sample) >> 8)
		chunk[2*i+1] = int8(sample)
	}

	return chunk
}

// ScaleToPCM16 converts an integer sample of the given bit depth to 16 bit.
// 8 bit samples are treated as unsigned, the way WAV stores them.
func ScaleToPCM16(sample int, bitDepth int) int16 {
	switch {
	case bitDepth == 8:
		sample = (sample - 128) << 8
	case bitDepth < 16:
		sample <<= uint(16 - bitDepth)
	case bitDepth > 16:
		sample >>= uint(bitDepth - 16)
	}

	return clampPCM16(sample)
}

func clampPCM16(sample int) int16 {
	if sample > 32767 {
		return 32767
	} else if sample < -32768 {
		return -32768
	}

	return int16(sample)
}
