package predictor

import "fmt"

// TransportError means the request never produced a usable HTTP response:
// the network was unreachable, the connection was refused, or the request
// timed out.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("prediction service unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ResponseError means the service answered, but not with a usable
// prediction: a non-success status, or a body that does not parse as the
// expected shape.
type ResponseError struct {
	StatusCode int
	Detail     string
}

func (e *ResponseError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("prediction service returned status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("prediction service returned a bad response: %s", e.Detail)
}
