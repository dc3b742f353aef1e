package worker

import (
	"runtime"
	"sync"

	"github.com/getsentry/sentry-go"
)

var tasks = make(chan func(), runtime.NumCPU())

func init() {
	for i := 0; i < runtime.NumCPU(); i++ {
		go run()
	}
}

func run() {
	defer sentry.Recover()

	for f := range tasks {
		f()
	}
}

// Submit queues a CPU intensive function onto the pool. Blocks while every
// worker is busy and the queue is full.
func Submit(f func()) {
	tasks <- f
}

// SubmitWait queues f and marks wg done once it returns, panics included.
func SubmitWait(wg *sync.WaitGroup, f func()) {
	tasks <- func() {
		defer wg.Done()
		f()
	}
}
