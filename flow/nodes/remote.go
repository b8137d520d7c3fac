package nodes

import (
	"context"
	"errors"
	"net/http"

	contractx "github.com/pushlivechat/flowstart/flow/contract"
)

// classifyRemote maps a failed outbound call to a RemoteError outcome:
// non-2xx statuses keep their code, cancellation and timeouts are
// timeout-classified, anything else is an upstream transport failure.
func classifyRemote(err error) contractx.Outcome {
	var statusErr *contractx.StatusError
	switch {
	case errors.As(err, &statusErr):
		return contractx.RemoteError(statusErr.Code, statusErr.Body)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return contractx.RemoteError(http.StatusGatewayTimeout, err.Error())
	default:
		return contractx.RemoteError(http.StatusBadGateway, err.Error())
	}
}
