package report

import (
	"fmt"
	"time"

	"github.com/JCoe77/akamai-dom-automation/internal/model"
)

// outcomeDTO is the persistence shape of one outcome in DynamoDB:
// PK is the run ID, SK orders outcomes within the run while keeping the
// target identity readable.
type outcomeDTO struct {
	PK              string    `dynamodbav:"pk"`
	SK              string    `dynamodbav:"sk"`
	Flow            string    `dynamodbav:"Flow"`
	DomainName      string    `dynamodbav:"DomainName"`
	ValidationScope string    `dynamodbav:"ValidationScope"`
	StatusCode      string    `dynamodbav:"StatusCode"`
	Result          string    `dynamodbav:"Result"`
	Name            string    `dynamodbav:"Name,omitempty"`
	Token           string    `dynamodbav:"Token,omitempty"`
	Details         string    `dynamodbav:"Details,omitempty"`
	ErrorTitle      string    `dynamodbav:"ErrorTitle,omitempty"`
	ErrorDetail     string    `dynamodbav:"ErrorDetail,omitempty"`
	RunTime         time.Time `dynamodbav:"RunTime"`
}

// newOutcomeDTO maps one outcome into its DynamoDB item. The sequence
// number in the sort key keeps duplicate identities within one run from
// overwriting each other.
func newOutcomeDTO(runID, flow string, seq int, o model.Outcome, runTime time.Time) outcomeDTO {
	return outcomeDTO{
		PK:              runID,
		SK:              fmt.Sprintf("%06d#%s#%s", seq, o.DomainName, o.ValidationScope),
		Flow:            flow,
		DomainName:      o.DomainName,
		ValidationScope: string(o.ValidationScope),
		StatusCode:      o.StatusCode,
		Result:          string(o.Result),
		Name:            o.Name,
		Token:           o.Token,
		Details:         o.Details,
		ErrorTitle:      o.ErrorTitle,
		ErrorDetail:     o.ErrorDetail,
		RunTime:         runTime,
	}
}
