package model

type Status string

const (
	StatusSuccess Status = "success"
	StatusFail    Status = "fail"
	StatusError   Status = "error"
)

// Envelope is the caller-facing response shape shared by every
// operation: a status tag, a message and a flat payload.
type Envelope map[string]interface{}

func Success(message string) Envelope {
	return Envelope{"status": StatusSuccess, "message": message}
}

// Fail marks a domain rejection: bad input, conflict, missing entity.
func Fail(message string) Envelope {
	return Envelope{"status": StatusFail, "message": message}
}

// Error marks an external failure: persistence or mail.
func Error(message string) Envelope {
	return Envelope{"status": StatusError, "message": message}
}

func (e Envelope) With(key string, v interface{}) Envelope {
	e[key] = v
	return e
}
