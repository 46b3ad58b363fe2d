package utils

import (
	"fmt"
	"io"
	"time"
)

// Spinner initializes the process indicator.
type Spinner struct {
	out      io.Writer
	stopChan chan struct{}
	doneChan chan struct{}
}

// NewSpinner instantiates a new Spinner writing to out.
func NewSpinner(out io.Writer) *Spinner {
	return &Spinner{out: out}
}

// Start starts the process indicator.
func (s *Spinner) Start(message string) {
	s.stopChan = make(chan struct{}, 1)
	s.doneChan = make(chan struct{})

	go func() {
		defer close(s.doneChan)
		for {
			for _, r := range `-\|/` {
				select {
				case <-s.stopChan:
					fmt.Fprint(s.out, "\r")
					return
				default:
					fmt.Fprintf(s.out, "\r%s%s %c%s", message, SuccessColor, r, DefaultColor)
					time.Sleep(time.Millisecond * 100)
				}
			}
		}
	}()
}

// Stop stops the process indicator and waits until the last frame is written.
func (s *Spinner) Stop() {
	if s.stopChan == nil {
		return
	}
	s.stopChan <- struct{}{}
	<-s.doneChan
	s.stopChan = nil
}
