package hostbridge

import (
	"encoding/json"
	"io"
	"log"
	"sync"
)

// Message is one output line.
type Message struct {
	Type     string `json:"type"`
	HasError *bool  `json:"hasError,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Emitter writes state changes and warnings to the host. It satisfies
// notify.StateSetter and notify.Warner and is safe for concurrent use.
type Emitter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewEmitter creates an Emitter writing JSON lines to w.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{enc: json.NewEncoder(w)}
}

// SetErrorState writes an error_state message.
func (e *Emitter) SetErrorState(hasError bool) {
	e.write(Message{Type: MessageErrorState, HasError: &hasError})
}

// Warn writes a warning message.
func (e *Emitter) Warn(message string) {
	e.write(Message{Type: MessageWarning, Message: message})
}

func (e *Emitter) write(m Message) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enc.Encode(m); err != nil {
		log.Printf("[hostbridge] warning: failed to write %s: %v", m.Type, err)
	}
}
