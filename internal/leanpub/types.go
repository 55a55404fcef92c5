package leanpub

// Response is the raw HTTP result of a Leanpub API call.
type Response struct {
	StatusCode int
	Status     string
	Body       string
}

// Outcome is the result of a Leanpub operation. Exactly one of Response and
// Err is set.
type Outcome struct {
	Response *Response
	Err      error
}

// OK reports whether the operation succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil && o.Response != nil
}

func succeeded(resp *Response) Outcome {
	return Outcome{Response: resp}
}

func failed(err error) Outcome {
	return Outcome{Err: err}
}

// previewRequest is the JSON body Leanpub expects on preview.json.
type previewRequest struct {
	APIKey string `json:"api_key"`
}
