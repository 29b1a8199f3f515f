package frame

// AudioBatchFunc delivers interleaved stereo samples and returns the
// number of frames consumed.
type AudioBatchFunc func(samples []int16) int

// AudioSampleFunc delivers a single stereo frame.
type AudioSampleFunc func(left, right int16)

// ForwardAudio delivers one frame's worth of interleaved stereo samples.
// The whole batch goes to batch when it is set; otherwise pairs go to
// single in order. With neither set the audio is discarded. A trailing
// unpaired sample is ignored. Returns the number of stereo frames
// delivered.
func ForwardAudio(samples []int16, batch AudioBatchFunc, single AudioSampleFunc) int {
	frames := len(samples) / 2
	if frames == 0 {
		return 0
	}
	switch {
	case batch != nil:
		batch(samples[:frames*2])
	case single != nil:
		for i := 0; i < frames; i++ {
			single(samples[2*i], samples[2*i+1])
		}
	default:
		return 0
	}
	return frames
}
