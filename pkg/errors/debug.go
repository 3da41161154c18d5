package errors

import (
	"errors"
	"fmt"
)

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	UpstreamStatus int    `json:"upstream_status,omitempty"`
	UpstreamBody   string `json:"upstream_body,omitempty"`
}

// statusCarrier is implemented by transport errors that keep the raw
// upstream HTTP response around.
type statusCarrier interface {
	HTTPStatus() int
	ResponseBody() string
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var carrier statusCarrier
	if errors.As(err, &carrier) {
		d.UpstreamStatus = carrier.HTTPStatus()
		d.UpstreamBody = carrier.ResponseBody()
	}

	return d
}
