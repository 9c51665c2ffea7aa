package gateway

import (
	"errors"
	"net/http"

	"github.com/google/go-github/v80/github"
)

// StatsSignal classifies one response of the contributor statistics endpoint.
type StatsSignal int

const (
	// SignalReady is a 200 with a decodable body.
	SignalReady StatsSignal = iota
	// SignalMalformed is a 200 whose body could not be decoded.
	SignalMalformed
	// SignalComputing is a 202: GitHub is still computing the statistics.
	SignalComputing
	// SignalNoContent is a 204: the repository has no statistics.
	SignalNoContent
	// SignalForbidden is a 403, including primary and secondary rate limits.
	SignalForbidden
	// SignalUnexpected is any other non-success status.
	SignalUnexpected
	// SignalTransport means no response was received.
	SignalTransport
)

func (s StatsSignal) String() string {
	switch s {
	case SignalReady:
		return "ready"
	case SignalMalformed:
		return "malformed"
	case SignalComputing:
		return "computing"
	case SignalNoContent:
		return "no-content"
	case SignalForbidden:
		return "forbidden"
	case SignalUnexpected:
		return "unexpected"
	case SignalTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// classify maps the status code and error returned by go-github to a StatsSignal.
// A zero status means the request never produced a response.
func classify(status int, err error) StatsSignal {
	var accepted *github.AcceptedError
	switch {
	case errors.As(err, &accepted):
		return SignalComputing
	case status == 0:
		return SignalTransport
	case status == http.StatusNoContent:
		return SignalNoContent
	case status == http.StatusForbidden:
		return SignalForbidden
	case status == http.StatusAccepted:
		return SignalComputing
	case status >= 200 && status < 300:
		if err != nil {
			return SignalMalformed
		}
		return SignalReady
	default:
		return SignalUnexpected
	}
}
