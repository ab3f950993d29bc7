package dvapi

import "github.com/JCoe77/akamai-dom-automation/internal/model"

// Operation identifies which bulk endpoint a batch is sent to
type Operation string

const (
	// OpCreate creates domains for validation
	OpCreate Operation = "create"
	// OpValidate triggers validation of already-created domains
	OpValidate Operation = "validate"
	// OpDelete removes domains from validation
	OpDelete Operation = "delete"
)

// Response captures one API reply: the HTTP status and the raw body.
// Callers classify and parse it; the client itself does not interpret
// non-transport failures.
type Response struct {
	StatusCode int
	Body       []byte
}

// ErrorResponse is the API's problem-details error envelope
type ErrorResponse struct {
	Type     string       `json:"type"`
	Title    string       `json:"title"`
	Detail   string       `json:"detail"`
	Instance string       `json:"instance"`
	Errors   []FieldError `json:"errors"`
}

// FieldError is one entry of an ErrorResponse errors list. For batch
// requests Field references the offending member as domains[<i>].<subfield>.
type FieldError struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Field  string `json:"field"`
}

// ListedDomain is one entry of the paginated domain listing
type ListedDomain struct {
	DomainName      string `json:"domainName"`
	ValidationScope string `json:"validationScope"`
	DomainStatus    string `json:"domainStatus"`
}

// Target converts a listing entry into a normalized validation target
func (d ListedDomain) Target() (model.Target, bool) {
	return model.NewTarget(d.DomainName, d.ValidationScope)
}

// domainResult is the per-domain shape the API embeds in its various
// response envelopes. Fields are a union across endpoints; absent ones
// decode to zero values.
type domainResult struct {
	DomainName          string `json:"domainName"`
	ValidationScope     string `json:"validationScope"`
	Status              string `json:"status"`
	DomainStatus        string `json:"domainStatus"`
	Detail              string `json:"detail"`
	ValidationChallenge struct {
		TXTRecord struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"txtRecord"`
	} `json:"validationChallenge"`
}
