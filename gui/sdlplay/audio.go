// This file is part of GopherNES.
//
// GopherNES is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherNES is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherNES.  If not, see <https://www.gnu.org/licenses/>.

package sdlplay

import (
	"time"

	"github.com/jetsetilly/gophernes/hardware/output"
	"github.com/veandco/go-sdl2/sdl"
)

// the number of samples in the SDL audio buffer
const bufferLength = 1024

// the amount of audio (in seconds) that can be queued before the emulation is
// made to wait
const maxQueueSeconds = 0.1

type sound struct {
	id   sdl.AudioDeviceID
	spec output.AudioSpec

	// the maximum size of the queue in bytes
	maxQueue uint32

	// buffer of encoded samples. reused every frame
	data []byte
}

func newSound(spec output.AudioSpec) (*sound, error) {
	snd := &sound{spec: spec}

	if spec.Rate <= 0 {
		return snd, nil
	}

	desired := &sdl.AudioSpec{
		Freq:     int32(spec.Rate),
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  bufferLength,
	}
	if spec.Bits == 8 {
		desired.Format = sdl.AUDIO_S8
	}

	var err error
	snd.id, err = sdl.OpenAudioDevice("", false, desired, nil, 0)
	if err != nil {
		return nil, err
	}

	snd.maxQueue = uint32(float64(spec.Rate*spec.Bits/8) * maxQueueSeconds)

	sdl.PauseAudioDevice(snd.id, false)

	return snd, nil
}

func (snd *sound) enabled() bool {
	return snd.id != 0
}

func (snd *sound) queue(samples []int16) error {
	if !snd.enabled() {
		return nil
	}

	snd.data = snd.data[:0]
	if snd.spec.Bits == 8 {
		for _, s := range samples {
			snd.data = append(snd.data, byte(int8(s)))
		}
	} else {
		for _, s := range samples {
			snd.data = append(snd.data, byte(s), byte(s>>8))
		}
	}

	if err := sdl.QueueAudio(snd.id, snd.data); err != nil {
		return err
	}

	// wait for the audio device to catch up
	for sdl.GetQueuedAudioSize(snd.id) > snd.maxQueue {
		time.Sleep(time.Millisecond)
	}

	return nil
}

func (snd *sound) end() {
	if !snd.enabled() {
		return
	}
	sdl.CloseAudioDevice(snd.id)
	snd.id = 0
}
