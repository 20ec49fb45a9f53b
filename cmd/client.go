package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/reflectoken/rtk/jsonx"
)

// rpcClient is a minimal JSON-RPC 2.0 HTTP client for talking to a node's
// /rpc endpoint from the CLI.
type rpcClient struct {
	url  string
	http *http.Client
}

func newRPCClient(nodeURL string) *rpcClient {
	return &rpcClient{
		url:  nodeURL + "/rpc",
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data,omitempty"`
	} `json:"error"`
}

// Call invokes method with params and decodes the result into out (may be nil).
func (c *rpcClient) Call(method string, params, out interface{}) error {
	body, err := jsonx.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return fmt.Errorf("could not marshal request: %w", err)
	}

	resp, err := c.http.Post(c.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("rpc call failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded rpcResponse
	if err := jsonx.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}
	if decoded.Error != nil {
		return fmt.Errorf("rpc error %d: %s", decoded.Error.Code, decoded.Error.Message)
	}
	if out != nil {
		if err := jsonx.Unmarshal(decoded.Result, out); err != nil {
			return fmt.Errorf("could not decode result: %w", err)
		}
	}
	return nil
}
