package experiment

import (
	"bytes"
	"fmt"
	"runtime"
	"sync"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/pkg/errors"
)

// Task is one independent unit of a sweep.
type Task func() error

type manyErr []error

func (err manyErr) Error() string {
	var buf bytes.Buffer
	for _, e := range err {
		fmt.Fprintln(&buf, e.Error())
	}
	return buf.String()
}

// Errors unpacks the per-task errors returned by Sweep.
func Errors(err error) []error {
	if me, ok := err.(manyErr); ok {
		return me
	}
	if err == nil {
		return nil
	}
	return []error{err}
}

// Sweep runs the tasks on up to workers goroutines. A task that fails or panics never stops the others: all
// failures are collected and returned together once every task is done. workers < 1 means one per CPU. pw may
// be nil; otherwise a tracker follows the sweep.
func Sweep(tasks []Task, workers int, pw progress.Writer, message string) error {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	var tracker *progress.Tracker
	if pw != nil {
		tracker = &progress.Tracker{
			Message: message,
			Total:   int64(len(tasks)),
			Units:   progress.UnitsDefault,
		}
		pw.AppendTracker(tracker)
		tracker.Start()
	}

	var (
		wg   sync.WaitGroup
		lock sync.Mutex
		errs manyErr
	)
	sem := make(chan struct{}, workers)
	for i, t := range tasks {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, t Task) {
			defer wg.Done()
			defer func() { <-sem }()
			err := runTask(t)
			lock.Lock()
			if err != nil {
				errs = append(errs, errors.WithMessagef(err, "task %d", i))
			}
			if tracker != nil {
				tracker.Increment(1)
			}
			lock.Unlock()
		}(i, t)
	}
	wg.Wait()

	if tracker != nil {
		if len(errs) > 0 {
			tracker.MarkAsErrored()
		} else {
			tracker.MarkAsDone()
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func runTask(t Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic: %v", r)
		}
	}()
	return t()
}
