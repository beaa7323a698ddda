package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/computeruseprotocol/go-sdk/internal/cuperr"
)

// CDP deadlines.
const (
	handshakeTimeout = 30 * time.Second
	commandTimeout   = 30 * time.Second
)

// pageTarget is one entry of the /json target list.
type pageTarget struct {
	ID                   string `json:"id"`
	Type                 string `json:"type"`
	Title                string `json:"title"`
	URL                  string `json:"url"`
	WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
}

// discoverTargets fetches the page target list from the DevTools HTTP
// endpoint.
func discoverTargets(ctx context.Context, host string, port int) ([]pageTarget, error) {
	url := fmt.Sprintf("http://%s:%d/json", host, port)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: handshakeTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, cuperr.Wrap(cuperr.PlatformUnavailable, err,
			"no Chrome DevTools endpoint at %s:%d (start the browser with --remote-debugging-port=%d)", host, port, port)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, cuperr.Wrap(cuperr.PlatformFailure, err, "read target list: %v", err)
	}
	var targets []pageTarget
	if err := json.Unmarshal(body, &targets); err != nil {
		return nil, cuperr.Wrap(cuperr.PlatformFailure, err, "decode target list: %v", err)
	}
	var pages []pageTarget
	for _, t := range targets {
		if t.Type == "page" && t.WebSocketDebuggerURL != "" {
			pages = append(pages, t)
		}
	}
	return pages, nil
}

// cdpConn is one DevTools WebSocket connection. Message ids increase
// monotonically; replies are correlated by id.
type cdpConn struct {
	url  string
	ws   *websocket.Conn
	mu   sync.Mutex // guards next and writes
	next int64

	pendingMu sync.Mutex
	pending   map[int64]chan cdpReply
	readErr   error
	done      chan struct{}
}

type cdpReply struct {
	Result json.RawMessage
	Err    *cdpError
}

type cdpError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type cdpMessage struct {
	ID     int64           `json:"id,omitempty"`
	Method string          `json:"method,omitempty"`
	Params any             `json:"params,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *cdpError       `json:"error,omitempty"`
}

// dial opens a DevTools connection and starts the read loop.
func dial(ctx context.Context, wsURL string) (*cdpConn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	ws, _, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, cuperr.Wrap(cuperr.PlatformUnavailable, err, "connect to %s: %v", wsURL, err)
	}
	c := &cdpConn{
		url:     wsURL,
		ws:      ws,
		pending: make(map[int64]chan cdpReply),
		done:    make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

func (c *cdpConn) readLoop() {
	defer close(c.done)
	for {
		var msg cdpMessage
		if err := c.ws.ReadJSON(&msg); err != nil {
			c.pendingMu.Lock()
			c.readErr = err
			for id, ch := range c.pending {
				close(ch)
				delete(c.pending, id)
			}
			c.pendingMu.Unlock()
			return
		}
		if msg.ID == 0 {
			continue // event, not a reply
		}
		c.pendingMu.Lock()
		ch := c.pending[msg.ID]
		delete(c.pending, msg.ID)
		c.pendingMu.Unlock()
		if ch != nil {
			ch <- cdpReply{Result: msg.Result, Err: msg.Error}
			close(ch)
		}
	}
}

// Call sends one command and waits for its reply.
func (c *cdpConn) Call(ctx context.Context, method string, params any, out any) error {
	c.mu.Lock()
	c.next++
	id := c.next
	ch := make(chan cdpReply, 1)
	c.pendingMu.Lock()
	c.pending[id] = ch
	c.pendingMu.Unlock()
	err := c.ws.WriteJSON(cdpMessage{ID: id, Method: method, Params: params})
	c.mu.Unlock()
	if err != nil {
		c.dropPending(id)
		return cuperr.Wrap(cuperr.PlatformFailure, err, "send %s: %v", method, err)
	}

	timer := time.NewTimer(commandTimeout)
	defer timer.Stop()
	select {
	case reply, ok := <-ch:
		if !ok {
			return cuperr.New(cuperr.PlatformFailure, "connection to %s closed during %s", c.url, method)
		}
		if reply.Err != nil {
			return cuperr.New(cuperr.PlatformFailure, "%s: %s", method, reply.Err.Message)
		}
		if out != nil && len(reply.Result) > 0 {
			if err := json.Unmarshal(reply.Result, out); err != nil {
				return cuperr.Wrap(cuperr.PlatformFailure, err, "decode %s reply: %v", method, err)
			}
		}
		return nil
	case <-timer.C:
		c.dropPending(id)
		return cuperr.New(cuperr.PlatformTimeout, "%s did not reply within %s", method, commandTimeout)
	case <-ctx.Done():
		c.dropPending(id)
		return ctx.Err()
	}
}

func (c *cdpConn) dropPending(id int64) {
	c.pendingMu.Lock()
	delete(c.pending, id)
	c.pendingMu.Unlock()
}

// Close shuts the connection down.
func (c *cdpConn) Close() error {
	err := c.ws.Close()
	<-c.done
	return err
}
