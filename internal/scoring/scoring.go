// Package scoring queries a deployed scorecard on a PMML scoring service.
// The request and response shapes follow the Openscoring REST API.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/huangsam/scorecard/schema"
)

// DefaultQueryID is sent when no query ID is given.
const DefaultQueryID = "scorecard-query"

// Query is the evaluation request body.
type Query struct {
	ID        string         `json:"id"`
	Arguments map[string]any `json:"arguments"`
}

// Response is a decoded evaluation response.
type Response struct {
	ID     string         `json:"id"`
	Result map[string]any `json:"result"`
	Raw    []byte         `json:"-"`
}

// Client posts queries to model endpoints below a base URL.
type Client struct {
	client   *client.Client
	endpoint string
	timeout  time.Duration
}

// NewClient creates a client for the service at endpoint, e.g.
// http://localhost:8080/openscoring/model.
func NewClient(endpoint string, timeout time.Duration) (*Client, error) {
	if endpoint == "" {
		return nil, errors.New("--endpoint is required for score command")
	}
	c, err := client.NewClient(
		client.WithDialTimeout(timeout),
		client.WithClientReadTimeout(timeout),
		client.WithDialer(standard.NewDialer()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}
	return &Client{client: c, endpoint: endpoint, timeout: timeout}, nil
}

// Score posts q to the endpoint of model and decodes the result.
func (c *Client) Score(ctx context.Context, model string, q Query) (*Response, error) {
	if model == "" {
		return nil, errors.New("--model is required for score command")
	}
	if q.ID == "" {
		q.ID = DefaultQueryID
	}
	if q.Arguments == nil {
		q.Arguments = map[string]any{}
	}
	body, err := sonic.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(c.endpoint + "/" + model)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.SetBody(body)

	if err := c.client.DoTimeout(ctx, req, resp, c.timeout); err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	status := resp.StatusCode()
	raw := append([]byte(nil), resp.Body()...)
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("scoring service returned HTTP %d: %s", status, truncateBody(raw))
	}

	out := &Response{Raw: raw}
	if err := sonic.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return out, nil
}

// ParseArguments decodes a JSON object of field values. Empty input means no arguments.
func ParseArguments(data []byte) (map[string]any, error) {
	args := map[string]any{}
	if len(data) == 0 {
		return args, nil
	}
	if err := sonic.Unmarshal(data, &args); err != nil {
		return nil, fmt.Errorf("query must be a JSON object of field values: %w", err)
	}
	return args, nil
}

// LoadArguments reads the query arguments from the inline query or the query file.
// A query file of "-" reads stdin.
func LoadArguments(query, queryFile string) (map[string]any, error) {
	switch {
	case query != "":
		return ParseArguments([]byte(query))
	case queryFile == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read query: %w", err)
		}
		return ParseArguments(data)
	case queryFile != "":
		data, err := os.ReadFile(queryFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read query file %s: %w", queryFile, err)
		}
		return ParseArguments(data)
	default:
		return map[string]any{}, nil
	}
}

// OutputNames lists the result keys a scorecard produces, in display order.
func OutputNames() []string {
	names := []string{schema.RiskScoreField}
	for rank := 1; rank <= schema.ReasonCodeCount; rank++ {
		names = append(names, schema.ReasonCodePrefix+strconv.Itoa(rank))
	}
	return names
}

// WriteResult prints the score and reason codes, or the body as is when raw.
func WriteResult(w io.Writer, resp *Response, raw bool) error {
	if raw {
		_, err := w.Write(resp.Raw)
		return err
	}
	if resp.Result == nil {
		return errors.New("response has no result; use --raw to inspect it")
	}
	for _, name := range OutputNames() {
		if _, err := fmt.Fprintf(w, "%s: %s\n", name, formatValue(resp.Result[name])); err != nil {
			return err
		}
	}
	return nil
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

func truncateBody(body []byte) string {
	const limit = 200
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
