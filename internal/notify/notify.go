package notify

import "log"

// Notifier is the server-side stand-in for the transient toasts the UI
// shows on cart mutations and checkout failures. Every rejected operation
// goes through here so nothing fails silently.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Log writes notifications to the process log.
type Log struct{}

func (Log) Success(message string) {
	log.Printf("notify: %s", message)
}

func (Log) Error(message string) {
	log.Printf("notify error: %s", message)
}

// Nop discards notifications.
type Nop struct{}

func (Nop) Success(string) {}
func (Nop) Error(string)   {}
