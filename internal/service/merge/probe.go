package merge

import (
	"time"
)

// Duration reports the playable length of an encoded audio file (mp3 or wav).
func Duration(path string) (time.Duration, error) {
	streamer, format, err := decodeFile(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = streamer.Close() }()
	return format.SampleRate.D(streamer.Len()), nil
}
