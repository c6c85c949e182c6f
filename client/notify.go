package client

import "log"

// Notifier is the toast sink: the core reports outcomes, the UI decides how
// to render them.
type Notifier interface {
	Success(message string)
	Failure(message string)
}

type LogNotifier struct{}

func (LogNotifier) Success(message string) { log.Println(message) }
func (LogNotifier) Failure(message string) { log.Println("error:", message) }

type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Failure(string) {}
