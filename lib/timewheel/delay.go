package timewheel

import "time"

var (
	w = NewTimeWheel(time.Second, 3600)
)

func init() {
	w.Start()
}

// Delay 在 duration 之后执行 job
func Delay(duration time.Duration, key string, job func()) {
	w.AddJob(job, key, duration)
}

// At 在 t 时刻执行 job
func At(t time.Time, key string, job func()) {
	w.AddJob(job, key, time.Until(t))
}

func Cancel(key string) {
	w.RemoveJob(key)
}
