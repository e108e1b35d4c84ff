package detector

import "time"

var afterFunc = func(d time.Duration, f func()) timer {
	return time.AfterFunc(d, f)
}
