//go:build !noos

package platform

// Thread is a worker goroutine with RTOS-like create/exit/terminate
// semantics. The driver core starts exactly two: the receive thread and
// the IO thread.
type Thread struct {
	quit chan struct{}
	done chan struct{}
}

// NewThread starts fn in a new goroutine. fn must return when quit is
// closed. A non-zero priority is negated and set as the Linux nice
// value of the thread's underlying OS thread (see lockAndPrioritize);
// it is ignored on platforms without a native priority knob.
func NewThread(name string, fn func(quit <-chan struct{}), priority int) *Thread {
	t := &Thread{
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go func() {
		defer close(t.done)
		lockAndPrioritize(priority)
		fn(t.quit)
	}()
	return t
}

// Terminate signals the thread to quit and waits for it to exit.
func (t *Thread) Terminate() {
	close(t.quit)
	<-t.done
}
