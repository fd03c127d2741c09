package dairy

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
)

// List fetches an entity collection. endpoint is the collection base
// (e.g. "/api/milk-yields/"); query is an optional raw query string the
// caller already encoded, used for admin sub-scopes and server-side filters.
func List[T any](ctx context.Context, c *Client, endpoint, query string) ([]T, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	target := endpoint
	if query != "" {
		target = endpoint + "?" + query
	}

	result := new([]T)
	resp, err := req.SetResult(result).Get(target)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: fmt.Sprintf("fetch %s: %v", endpoint, err)}
	}
	if apiErr := errorFromStatus(resp, endpoint); apiErr != nil {
		return nil, apiErr
	}

	return *result, nil
}

// Create POSTs a new record and returns the server's copy, which carries the
// assigned id and timestamps.
func Create[T any](ctx context.Context, c *Client, endpoint string, payload any) (*T, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	result := new(T)
	fieldErrs := map[string]any{}

	resp, err := req.SetBody(payload).SetResult(result).SetError(&fieldErrs).Post(endpoint)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: fmt.Sprintf("create on %s: %v", endpoint, err)}
	}
	if apiErr := mutationError(resp, fieldErrs); apiErr != nil {
		return nil, apiErr
	}

	return result, nil
}

// Update PUTs a full replacement of the record's mutable fields.
func Update[T any](ctx context.Context, c *Client, endpoint string, id int, payload any) (*T, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	result := new(T)
	fieldErrs := map[string]any{}

	resp, err := req.SetBody(payload).SetResult(result).SetError(&fieldErrs).Put(itemPath(endpoint, id))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: fmt.Sprintf("update on %s: %v", endpoint, err)}
	}
	if apiErr := mutationError(resp, fieldErrs); apiErr != nil {
		return nil, apiErr
	}

	return result, nil
}

// Delete removes a record by id. A 404 is reported as KindNotFound so the
// caller can treat the record as already gone.
func Delete(ctx context.Context, c *Client, endpoint string, id int) error {
	req, err := c.request(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Delete(itemPath(endpoint, id))
	if err != nil {
		return &Error{Kind: KindTransport, Message: fmt.Sprintf("delete on %s: %v", endpoint, err)}
	}

	switch {
	case resp.StatusCode() == http.StatusUnauthorized:
		return authError()
	case resp.StatusCode() == http.StatusNotFound:
		return &Error{Kind: KindNotFound, Status: 404, Message: "record not found, it may already be deleted"}
	case resp.StatusCode() >= http.StatusBadRequest:
		return &Error{Kind: KindTransport, Status: resp.StatusCode(), Message: "could not delete the record, please try again"}
	}
	return nil
}

// Export downloads the server-generated spreadsheet for the collection.
// The query carries the caller's filters plus the role scope parameters.
func Export(ctx context.Context, c *Client, endpoint string, query url.Values) ([]byte, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	target := strings.TrimSuffix(endpoint, "/") + "/export/"
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	resp, err := req.Get(target)
	if err != nil {
		return nil, &Error{Kind: KindExport, Message: fmt.Sprintf("export from %s: %v", endpoint, err)}
	}

	switch {
	case resp.StatusCode() == http.StatusUnauthorized:
		return nil, authError()
	case resp.StatusCode() >= http.StatusBadRequest:
		return nil, &Error{Kind: KindExport, Status: resp.StatusCode(), Message: "export failed, the spreadsheet could not be generated"}
	}

	return resp.Body(), nil
}

func itemPath(endpoint string, id int) string {
	return strings.TrimSuffix(endpoint, "/") + "/" + strconv.Itoa(id) + "/"
}

// errorFromStatus maps read-path statuses onto the taxonomy.
func errorFromStatus(resp *resty.Response, endpoint string) *Error {
	switch {
	case resp.StatusCode() == http.StatusUnauthorized:
		return authError()
	case resp.StatusCode() >= http.StatusBadRequest:
		return &Error{
			Kind:    KindTransport,
			Status:  resp.StatusCode(),
			Message: fmt.Sprintf("could not load data from %s (status %d), please retry", endpoint, resp.StatusCode()),
		}
	}
	return nil
}

// mutationError maps write-path statuses, folding 4xx field payloads into a
// single joined validation message.
func mutationError(resp *resty.Response, fieldErrs map[string]any) *Error {
	switch {
	case resp.StatusCode() == http.StatusUnauthorized:
		return authError()
	case resp.StatusCode() >= http.StatusBadRequest && resp.StatusCode() < http.StatusInternalServerError:
		fields := decodeFieldErrors(fieldErrs)
		msg := joinFieldErrors(fields)
		if msg == "" {
			msg = fmt.Sprintf("the server rejected the record (status %d)", resp.StatusCode())
		}
		return &Error{Kind: KindValidation, Status: resp.StatusCode(), Message: msg, Fields: fields}
	case resp.StatusCode() >= http.StatusInternalServerError:
		return &Error{Kind: KindTransport, Status: resp.StatusCode(), Message: "could not save the record, please try again"}
	}
	return nil
}
