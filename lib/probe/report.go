package probe

import (
	"encoding/json"
	"errors"

	"github.com/nicolasgere/appwrite-smoke/lib/appwrite"
	"github.com/nicolasgere/appwrite-smoke/lib/config"
	"github.com/nicolasgere/appwrite-smoke/lib/utils"
)

const (
	msgConnecting = "Connecting to Appwrite endpoint:"
	msgSuccess    = "SUCCESS: connected to Appwrite and retrieved documents from collection."
	msgFailed     = "Appwrite request failed."
)

// Report prints out through p.
func Report(out Outcome, p *utils.Printer) {
	switch out.State {
	case StateAborted:
		reportAborted(out.Err, p)
	case StateSucceeded:
		p.Field(msgConnecting, out.Endpoint)
		p.Success(msgSuccess)
		// Summary holds an int and an *int; marshalling cannot fail.
		data, _ := json.MarshalIndent(out.Summary, "", "  ")
		p.Info("Result summary: " + string(data))
	case StateFailed:
		if out.Endpoint != "" {
			p.Field(msgConnecting, out.Endpoint)
		}
		p.Failure(msgFailed)
		reportRequestError(out.Err, p)
	}
}

func reportAborted(err error, p *utils.Printer) {
	var placeholder *config.PlaceholderError
	if errors.As(err, &placeholder) {
		p.Failure(placeholder.Error())
		p.Detail(config.RemediationHint)
		return
	}
	if err != nil {
		p.Failure(err.Error())
	}
}

func reportRequestError(err error, p *utils.Printer) {
	var re *appwrite.ResponseError
	if !errors.As(err, &re) {
		p.Detailf("%v", err)
		return
	}

	p.Detailf("Status: %d", re.Status)
	body, renderErr := RenderBody(re)
	if renderErr != nil {
		p.Detailf("%+v", *re)
		return
	}
	p.Detail("Body: " + body)
}

type rawResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

// RenderBody renders the error body as indented JSON. When the body was not
// JSON the status and raw body are rendered instead. The returned error is
// non-nil only if encoding fails, in which case the caller prints re as is.
func RenderBody(re *appwrite.ResponseError) (string, error) {
	var v any = re.Data
	if v == nil {
		v = rawResponse{Status: re.Status, Body: string(re.Body)}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
